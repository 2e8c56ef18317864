package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/squadroom/platform/internal/domain"
)

const sessionColumns = `id, title, description, date, duration, location, created_at, updated_at`

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

func (r *sessionRepo) List(ctx context.Context, db DBTX) ([]domain.TrainingSession, error) {
	rows, err := db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.TrainingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.TrainingSession, error) {
	row := db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM training_sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (r *sessionRepo) Create(ctx context.Context, db DBTX, in domain.NewTrainingSession) (*domain.TrainingSession, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO training_sessions (title, description, date, duration, location)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING `+sessionColumns,
		in.Title, in.Description, in.Date, in.Duration, in.Location)
	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) Update(ctx context.Context, db DBTX, id int64, patch domain.SessionPatch) (*domain.TrainingSession, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d::date", argIdx))
		args = append(args, *patch.Date)
		argIdx++
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE training_sessions SET %s
		WHERE id = $%d
		RETURNING `+sessionColumns,
		strings.Join(setClauses, ", "), argIdx)

	s, err := scanSession(db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM training_sessions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*domain.TrainingSession, error) {
	var s domain.TrainingSession
	var date time.Time
	err := row.Scan(&s.ID, &s.Title, &s.Description, &date, &s.Duration, &s.Location, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.Date = date.Format(domain.DateLayout)
	return &s, nil
}
