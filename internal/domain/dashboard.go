package domain

import (
	"sort"
	"time"
)

// DashboardListLimit caps the recent-player and upcoming-session lists.
const DashboardListLimit = 5

// UpcomingSession is a session in the dashboard's upcoming list.
type UpcomingSession struct {
	TrainingSession
	DurationLabel string `json:"duration_label"`
}

// DashboardStats summarizes the player and session listings.
type DashboardStats struct {
	TotalPlayers     int               `json:"total_players"`
	ActivePlayers    int               `json:"active_players"`
	TotalSessions    int               `json:"total_sessions"`
	UpcomingSessions int               `json:"upcoming_sessions"`
	RecentPlayers    []Player          `json:"recent_players"`
	NextSessions     []UpcomingSession `json:"next_sessions"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// ComputeDashboard derives the dashboard from full listings. A session is
// upcoming when its calendar date is on or after now's date in now's
// location. The inputs are not modified.
func ComputeDashboard(players []Player, sessions []TrainingSession, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalPlayers:  len(players),
		TotalSessions: len(sessions),
		RecentPlayers: []Player{},
		NextSessions:  []UpcomingSession{},
		GeneratedAt:   now,
	}

	for _, p := range players {
		if p.Status == PlayerActive {
			stats.ActivePlayers++
		}
	}

	recent := make([]Player, len(players))
	copy(recent, players)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > DashboardListLimit {
		recent = recent[:DashboardListLimit]
	}
	stats.RecentPlayers = append(stats.RecentPlayers, recent...)

	today := now.Format(DateLayout)
	var upcoming []TrainingSession
	for _, s := range sessions {
		if IsUpcoming(s.Date, today) {
			upcoming = append(upcoming, s)
		}
	}
	stats.UpcomingSessions = len(upcoming)

	// ISO dates order lexically.
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})
	if len(upcoming) > DashboardListLimit {
		upcoming = upcoming[:DashboardListLimit]
	}
	for _, s := range upcoming {
		stats.NextSessions = append(stats.NextSessions, UpcomingSession{
			TrainingSession: s,
			DurationLabel:   FormatDuration(s.Duration),
		})
	}

	return stats
}

// IsUpcoming reports whether an ISO session date falls on or after today.
func IsUpcoming(date, today string) bool {
	return date >= today
}
