// Command tokengen prints a bearer token for one of the two credential tiers,
// signed with the API's JWT_SECRET.
//
//	tokengen -tier client -sub dashboard-web
//	tokengen -tier service -sub coach-admin
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/squadroom/platform/internal/auth"
	"github.com/squadroom/platform/internal/infra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tierFlag := flag.String("tier", string(auth.TierClient), "credential tier: client or service")
	subject := flag.String("sub", "squadroom", "token subject")
	flag.Parse()

	if err := run(*tierFlag, *subject); err != nil {
		logger.Error("tokengen failed", "error", err)
		os.Exit(1)
	}
}

func run(tierName, subject string) error {
	tier, err := auth.ParseTier(tierName)
	if err != nil {
		return err
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	mgr := auth.NewJWTManager(cfg.JWTSecret, cfg.ClientTokenExpiry, cfg.ServiceTokenExpiry)
	token, err := mgr.GenerateToken(tier, subject)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
