//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/squadroom/platform/internal/auth"
	"github.com/squadroom/platform/internal/domain"
)

// ClientToken returns a read-only credential.
func (env *TestEnv) ClientToken() string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(auth.TierClient, "integration-web")
	if err != nil {
		env.t.Fatalf("ClientToken: %v", err)
	}
	return token
}

// ServiceToken returns the elevated credential.
func (env *TestEnv) ServiceToken() string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(auth.TierService, "integration-tools")
	if err != nil {
		env.t.Fatalf("ServiceToken: %v", err)
	}
	return token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// Do sends a JSON request with an optional bearer token.
func (env *TestEnv) Do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodGet, path, nil, token)
}

// AuthPOST performs an authenticated POST request.
func (env *TestEnv) AuthPOST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodPost, path, body, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodPatch, path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodDelete, path, nil, token)
}

// CreatePlayer stores a player through the API and returns it.
func (env *TestEnv) CreatePlayer(in domain.NewPlayer) domain.Player {
	env.t.Helper()
	resp := env.AuthPOST("/api/players", in, env.ServiceToken())
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		env.t.Fatalf("CreatePlayer: expected 201, got %d", resp.StatusCode)
	}
	var p domain.Player
	DecodeJSON(env.t, resp, &p)
	return p
}

// CreateSession stores a training session through the API and returns it.
func (env *TestEnv) CreateSession(in domain.NewTrainingSession) domain.TrainingSession {
	env.t.Helper()
	resp := env.AuthPOST("/api/sessions", in, env.ServiceToken())
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		env.t.Fatalf("CreateSession: expected 201, got %d", resp.StatusCode)
	}
	var s domain.TrainingSession
	DecodeJSON(env.t, resp, &s)
	return s
}

// SessionPath returns /api/sessions/{id} plus an optional suffix.
func SessionPath(id int64, suffix string) string {
	return fmt.Sprintf("/api/sessions/%d%s", id, suffix)
}
