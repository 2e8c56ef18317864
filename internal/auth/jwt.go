package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tier is the credential tier a token was issued for.
type Tier string

const (
	// TierClient is the restricted credential handed to browser clients.
	TierClient Tier = "client"
	// TierService is the elevated credential used for all writes.
	TierService Tier = "service"
)

// ParseTier converts a string to a known Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierClient, TierService:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown tier: %s", s)
	}
}

// Claims holds the custom JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	Tier Tier `json:"tier"`
}

// JWTManager issues and validates tokens for both tiers.
type JWTManager struct {
	secret        []byte
	clientExpiry  time.Duration
	serviceExpiry time.Duration
}

// NewJWTManager creates a JWT manager with tier-specific expiry durations.
func NewJWTManager(secret string, clientExpiry, serviceExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		clientExpiry:  clientExpiry,
		serviceExpiry: serviceExpiry,
	}
}

// GenerateToken creates a signed JWT for the given tier and subject.
func (m *JWTManager) GenerateToken(tier Tier, subject string) (string, error) {
	var expiry time.Duration
	switch tier {
	case TierClient:
		expiry = m.clientExpiry
	case TierService:
		expiry = m.serviceExpiry
	default:
		return "", fmt.Errorf("unknown tier: %s", tier)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(),
		},
		Tier: tier,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT, returning claims if valid.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if _, err := ParseTier(string(claims.Tier)); err != nil {
		return nil, err
	}

	return claims, nil
}
