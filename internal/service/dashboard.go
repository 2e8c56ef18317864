package service

import (
	"context"
	"time"

	"github.com/squadroom/platform/internal/domain"
)

// Dashboard derives summary statistics from the full player and session
// listings on every call.
//
// The cost grows with the roster; there is no server-side aggregate query.
type Dashboard struct {
	players  *PlayerDirectory
	sessions *SessionDirectory
	now      func() time.Time
	loc      *time.Location
}

// NewDashboard creates a Dashboard evaluating "today" in loc.
func NewDashboard(players *PlayerDirectory, sessions *SessionDirectory, now func() time.Time, loc *time.Location) *Dashboard {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Dashboard{players: players, sessions: sessions, now: now, loc: loc}
}

// Stats computes the dashboard. Listing failures degrade to zero counts.
func (d *Dashboard) Stats(ctx context.Context) domain.DashboardStats {
	players := d.players.List(ctx)
	sessions := d.sessions.List(ctx)
	return domain.ComputeDashboard(players, sessions, d.now().In(d.loc))
}
