package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/squadroom/platform/internal/cache"
	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/repository"
)

// PlayerDirectory implements player CRUD over the store.
type PlayerDirectory struct {
	db       repository.DBTX
	players  repository.PlayerRepository
	listings *cache.Listings
	changes  Announcer
	logger   *slog.Logger
}

// NewPlayerDirectory creates a PlayerDirectory.
func NewPlayerDirectory(
	db repository.DBTX,
	players repository.PlayerRepository,
	listings *cache.Listings,
	changes Announcer,
	logger *slog.Logger,
) *PlayerDirectory {
	return &PlayerDirectory{
		db:       db,
		players:  players,
		listings: listings,
		changes:  changes,
		logger:   logger,
	}
}

// List returns all players sorted by name. It never fails: a store error is
// logged and yields an empty listing, which is not cached.
func (d *PlayerDirectory) List(ctx context.Context) []domain.Player {
	players, err := cache.Load(d.listings, cache.KeyPlayers, func() ([]domain.Player, error) {
		return d.players.List(ctx, d.db)
	})
	if err != nil {
		d.logger.Warn("list players failed", "error", err)
		return []domain.Player{}
	}
	return players
}

// Get returns a player, or nil if none has the id. Store failures are
// returned as UNAVAILABLE rather than reported as absent.
func (d *PlayerDirectory) Get(ctx context.Context, id int64) (*domain.Player, error) {
	if err := domain.ValidateID("player", id); err != nil {
		return nil, err
	}
	p, err := d.players.FindByID(ctx, d.db, id)
	if err != nil {
		d.logger.Error("fetch player failed", "error", err, "player_id", id)
		return nil, storeError("failed to fetch player", err)
	}
	return p, nil
}

// Create stores a new player.
func (d *PlayerDirectory) Create(ctx context.Context, in domain.NewPlayer) (*domain.Player, error) {
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	p, err := d.players.Create(ctx, d.db, in)
	if err != nil {
		d.logger.Error("create player failed", "error", err)
		return nil, storeError("failed to create player", err)
	}
	if p == nil {
		return nil, domain.ErrInternal("failed to create player", nil)
	}
	d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntityPlayer, domain.ActionCreated, p.ID))
	return p, nil
}

// Update applies a partial update. updated_at is stamped even when the
// patch is empty.
func (d *PlayerDirectory) Update(ctx context.Context, id int64, patch domain.PlayerPatch) (*domain.Player, error) {
	if err := domain.ValidateID("player", id); err != nil {
		return nil, err
	}
	if err := domain.Validate(patch); err != nil {
		return nil, err
	}
	p, err := d.players.Update(ctx, d.db, id, patch)
	if err != nil {
		d.logger.Error("update player failed", "error", err, "player_id", id)
		return nil, storeError("failed to update player", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("player", strconv.FormatInt(id, 10))
	}
	d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntityPlayer, domain.ActionUpdated, p.ID))
	return p, nil
}

// Delete removes a player and, through the schema's cascade, its attendance
// rows. Deleting an id that does not exist succeeds.
func (d *PlayerDirectory) Delete(ctx context.Context, id int64) error {
	if err := domain.ValidateID("player", id); err != nil {
		return err
	}
	n, err := d.players.Delete(ctx, d.db, id)
	if err != nil {
		d.logger.Error("delete player failed", "error", err, "player_id", id)
		return storeError("failed to delete player", err)
	}
	if n > 0 {
		d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntityPlayer, domain.ActionDeleted, id))
	}
	return nil
}
