package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/repository"
)

// AttendanceManager edits the player/session join for one session at a time.
type AttendanceManager struct {
	db         repository.DBTX
	attendance repository.AttendanceRepository
	players    *PlayerDirectory
	changes    Announcer
	logger     *slog.Logger
}

// NewAttendanceManager creates an AttendanceManager. The player directory
// supplies the roster for the available-players view.
func NewAttendanceManager(
	db repository.DBTX,
	attendance repository.AttendanceRepository,
	players *PlayerDirectory,
	changes Announcer,
	logger *slog.Logger,
) *AttendanceManager {
	return &AttendanceManager{
		db:         db,
		attendance: attendance,
		players:    players,
		changes:    changes,
		logger:     logger,
	}
}

// List returns the session's attendance rows with player summaries. Unlike
// the directory listings, a store failure is returned to the caller.
func (m *AttendanceManager) List(ctx context.Context, sessionID int64, nameQuery string) ([]domain.AttendanceRow, error) {
	if err := domain.ValidateID("training session", sessionID); err != nil {
		return nil, err
	}
	rows, err := m.attendance.ListBySession(ctx, m.db, sessionID, strings.TrimSpace(nameQuery))
	if err != nil {
		m.logger.Error("list attendance failed", "error", err, "session_id", sessionID)
		return nil, storeError("failed to fetch session players", err)
	}
	for i := range rows {
		if rows[i].Rating != nil {
			rows[i].RatingLabel = domain.RatingLabel(*rows[i].Rating)
		}
	}
	return rows, nil
}

// AddPlayer attaches a player to a session, confirmed unless a status is
// given. Adding a pair that already exists replaces its status and keeps
// rating and notes; the pair never appears twice.
func (m *AttendanceManager) AddPlayer(ctx context.Context, sessionID int64, in domain.AddPlayerInput) (*domain.Attendance, error) {
	if err := domain.ValidateID("training session", sessionID); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.AttendanceConfirmed
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	a, err := m.attendance.Upsert(ctx, m.db, sessionID, in.PlayerID, in.Status)
	if err != nil {
		m.logger.Error("add player to session failed", "error", err, "session_id", sessionID, "player_id", in.PlayerID)
		return nil, storeError("failed to add player to session", err)
	}
	if a == nil {
		return nil, domain.ErrInternal("failed to add player to session", nil)
	}
	m.changes.Announce(ctx, domain.NewAttendanceEvent(domain.ActionCreated, sessionID, in.PlayerID))
	return a, nil
}

// Update changes status, rating and/or notes of an existing row.
func (m *AttendanceManager) Update(ctx context.Context, sessionID, playerID int64, patch domain.AttendancePatch) (*domain.Attendance, error) {
	if err := domain.ValidateID("training session", sessionID); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("player", playerID); err != nil {
		return nil, err
	}
	if patch.Rating != nil {
		if err := domain.ValidateRating(*patch.Rating); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}
	if err := domain.Validate(patch); err != nil {
		return nil, err
	}

	a, err := m.attendance.Update(ctx, m.db, sessionID, playerID, patch)
	if err != nil {
		m.logger.Error("update session player failed", "error", err, "session_id", sessionID, "player_id", playerID)
		return nil, storeError("failed to update player session details", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound("attendance", fmt.Sprintf("session %d / player %d", sessionID, playerID))
	}
	if !patch.IsEmpty() {
		m.changes.Announce(ctx, domain.NewAttendanceEvent(domain.ActionUpdated, sessionID, playerID))
	}
	return a, nil
}

// RemovePlayer detaches a player from a session. Removing a pair that does
// not exist succeeds.
func (m *AttendanceManager) RemovePlayer(ctx context.Context, sessionID, playerID int64) error {
	if err := domain.ValidateID("training session", sessionID); err != nil {
		return err
	}
	if err := domain.ValidateID("player", playerID); err != nil {
		return err
	}
	n, err := m.attendance.Delete(ctx, m.db, sessionID, playerID)
	if err != nil {
		m.logger.Error("remove player from session failed", "error", err, "session_id", sessionID, "player_id", playerID)
		return storeError("failed to remove player from session", err)
	}
	if n > 0 {
		m.changes.Announce(ctx, domain.NewAttendanceEvent(domain.ActionDeleted, sessionID, playerID))
	}
	return nil
}

// AvailablePlayers returns the roster minus players already attached to the
// session, in roster order. It is recomputed on every call.
func (m *AttendanceManager) AvailablePlayers(ctx context.Context, sessionID int64) ([]domain.Player, error) {
	attached, err := m.List(ctx, sessionID, "")
	if err != nil {
		return nil, err
	}
	return availablePlayers(m.players.List(ctx), attached), nil
}

func availablePlayers(roster []domain.Player, attached []domain.AttendanceRow) []domain.Player {
	taken := make(map[int64]struct{}, len(attached))
	for _, row := range attached {
		taken[row.PlayerID] = struct{}{}
	}
	out := make([]domain.Player, 0, len(roster))
	for _, p := range roster {
		if _, ok := taken[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}
