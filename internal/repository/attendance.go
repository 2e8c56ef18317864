package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/squadroom/platform/internal/domain"
)

type attendanceRepo struct{}

// NewAttendanceRepository returns a pgx-backed AttendanceRepository.
func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepo{}
}

func (r *attendanceRepo) ListBySession(ctx context.Context, db DBTX, sessionID int64, nameQuery string) ([]domain.AttendanceRow, error) {
	rows, err := db.Query(ctx, `
		SELECT ps.session_id, ps.player_id, ps.attendance_status, ps.performance_rating, ps.notes,
		       p.id, p.name, p.position, p.squad
		FROM player_sessions ps
		JOIN players p ON p.id = ps.player_id
		WHERE ps.session_id = $1
		  AND ($2 = '' OR p.name ILIKE '%' || $2 || '%')
		ORDER BY p.name COLLATE "C" ASC, p.id ASC`, sessionID, escapeLike(nameQuery))
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	result := []domain.AttendanceRow{}
	for rows.Next() {
		var row domain.AttendanceRow
		if err := rows.Scan(
			&row.SessionID, &row.PlayerID, &row.Status, &row.Rating, &row.Notes,
			&row.Player.ID, &row.Player.Name, &row.Player.Position, &row.Player.Squad,
		); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return result, nil
}

func (r *attendanceRepo) Upsert(ctx context.Context, db DBTX, sessionID, playerID int64, status domain.AttendanceStatus) (*domain.Attendance, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO player_sessions (session_id, player_id, attendance_status)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, player_id)
		DO UPDATE SET attendance_status = EXCLUDED.attendance_status
		RETURNING session_id, player_id, attendance_status, performance_rating, notes`,
		sessionID, playerID, status)
	a, err := scanAttendance(row)
	if err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepo) Update(ctx context.Context, db DBTX, sessionID, playerID int64, patch domain.AttendancePatch) (*domain.Attendance, error) {
	var setClauses []string
	args := []interface{}{sessionID, playerID}
	argIdx := 3

	if patch.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("attendance_status = $%d", argIdx))
		args = append(args, *patch.Status)
		argIdx++
	}
	if patch.Rating != nil {
		setClauses = append(setClauses, fmt.Sprintf("performance_rating = $%d", argIdx))
		args = append(args, *patch.Rating)
		argIdx++
	}
	if patch.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *patch.Notes)
	}

	var row pgx.Row
	if len(setClauses) == 0 {
		row = db.QueryRow(ctx, `
			SELECT session_id, player_id, attendance_status, performance_rating, notes
			FROM player_sessions WHERE session_id = $1 AND player_id = $2`, args...)
	} else {
		row = db.QueryRow(ctx, fmt.Sprintf(`
			UPDATE player_sessions SET %s
			WHERE session_id = $1 AND player_id = $2
			RETURNING session_id, player_id, attendance_status, performance_rating, notes`,
			strings.Join(setClauses, ", ")), args...)
	}

	a, err := scanAttendance(row)
	if err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepo) Delete(ctx context.Context, db DBTX, sessionID, playerID int64) (int64, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM player_sessions WHERE session_id = $1 AND player_id = $2`, sessionID, playerID)
	if err != nil {
		return 0, fmt.Errorf("delete attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var a domain.Attendance
	err := row.Scan(&a.SessionID, &a.PlayerID, &a.Status, &a.Rating, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan attendance: %w", err)
	}
	return &a, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
