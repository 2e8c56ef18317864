//go:build integration

package testutil

import (
	"context"
	"time"

	"github.com/squadroom/platform/internal/cache"
)

// CleanAll empties every table and resets identity sequences.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := env.Pool.Exec(ctx, "TRUNCATE TABLE player_sessions, training_sessions, players RESTART IDENTITY CASCADE")
	if err != nil {
		env.t.Fatalf("CleanAll: %v", err)
	}
	env.Listings.Invalidate(cache.KeyPlayers, cache.KeySessions)
}
