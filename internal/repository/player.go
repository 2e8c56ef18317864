package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/squadroom/platform/internal/domain"
)

const playerColumns = `id, name, position, squad, status, created_at, updated_at`

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) List(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players ORDER BY name COLLATE "C" ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, in domain.NewPlayer) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO players (name, position, squad, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+playerColumns,
		in.Name, in.Position, in.Squad, in.Status)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return p, nil
}

// Update builds its SET clause from the non-nil patch fields.
func (r *playerRepo) Update(ctx context.Context, db DBTX, id int64, patch domain.PlayerPatch) (*domain.Player, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{}
	argIdx := 1

	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.Position != nil {
		setClauses = append(setClauses, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *patch.Position)
		argIdx++
	}
	if patch.Squad != nil {
		setClauses = append(setClauses, fmt.Sprintf("squad = $%d", argIdx))
		args = append(args, *patch.Squad)
		argIdx++
	}
	if patch.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *patch.Status)
		argIdx++
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE players SET %s
		WHERE id = $%d
		RETURNING `+playerColumns,
		strings.Join(setClauses, ", "), argIdx)

	p, err := scanPlayer(db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete player: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Name, &p.Position, &p.Squad, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
