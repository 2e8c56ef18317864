package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/squadroom/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PlayerRepository provides access to players.
//
// Lookups return (nil, nil) when no row matches.
type PlayerRepository interface {
	// List returns all players ordered by name (byte order), then id.
	List(ctx context.Context, db DBTX) ([]domain.Player, error)

	// FindByID returns a player by ID.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error)

	// Create inserts a player and returns the stored row.
	Create(ctx context.Context, db DBTX, in domain.NewPlayer) (*domain.Player, error)

	// Update applies a partial update, always stamping updated_at.
	Update(ctx context.Context, db DBTX, id int64, patch domain.PlayerPatch) (*domain.Player, error)

	// Delete removes a player. Attendance rows go with it (ON DELETE CASCADE).
	// The returned count is the number of players removed.
	Delete(ctx context.Context, db DBTX, id int64) (int64, error)
}

// SessionRepository provides access to training_sessions.
type SessionRepository interface {
	// List returns all sessions ordered by date, then id.
	List(ctx context.Context, db DBTX) ([]domain.TrainingSession, error)

	FindByID(ctx context.Context, db DBTX, id int64) (*domain.TrainingSession, error)

	Create(ctx context.Context, db DBTX, in domain.NewTrainingSession) (*domain.TrainingSession, error)

	// Update applies a partial update, always stamping updated_at.
	Update(ctx context.Context, db DBTX, id int64, patch domain.SessionPatch) (*domain.TrainingSession, error)

	Delete(ctx context.Context, db DBTX, id int64) (int64, error)
}

// AttendanceRepository provides access to player_sessions.
type AttendanceRepository interface {
	// ListBySession returns a session's rows joined with player summaries,
	// ordered by player name. A non-empty nameQuery keeps only players whose
	// name contains it, ignoring case.
	ListBySession(ctx context.Context, db DBTX, sessionID int64, nameQuery string) ([]domain.AttendanceRow, error)

	// Upsert inserts the (session, player) row, or replaces the status of the
	// existing row while keeping its rating and notes.
	Upsert(ctx context.Context, db DBTX, sessionID, playerID int64, status domain.AttendanceStatus) (*domain.Attendance, error)

	// Update applies a partial update to an existing row.
	Update(ctx context.Context, db DBTX, sessionID, playerID int64, patch domain.AttendancePatch) (*domain.Attendance, error)

	Delete(ctx context.Context, db DBTX, sessionID, playerID int64) (int64, error)
}
