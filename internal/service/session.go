package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/squadroom/platform/internal/cache"
	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/repository"
)

// SessionDirectory implements training session CRUD over the store.
type SessionDirectory struct {
	db       repository.DBTX
	sessions repository.SessionRepository
	listings *cache.Listings
	changes  Announcer
	logger   *slog.Logger
}

// NewSessionDirectory creates a SessionDirectory.
func NewSessionDirectory(
	db repository.DBTX,
	sessions repository.SessionRepository,
	listings *cache.Listings,
	changes Announcer,
	logger *slog.Logger,
) *SessionDirectory {
	return &SessionDirectory{
		db:       db,
		sessions: sessions,
		listings: listings,
		changes:  changes,
		logger:   logger,
	}
}

// List returns all sessions ordered by date. Like the player listing it
// degrades to an empty result on store failure.
func (d *SessionDirectory) List(ctx context.Context) []domain.TrainingSession {
	sessions, err := cache.Load(d.listings, cache.KeySessions, func() ([]domain.TrainingSession, error) {
		return d.sessions.List(ctx, d.db)
	})
	if err != nil {
		d.logger.Warn("list training sessions failed", "error", err)
		return []domain.TrainingSession{}
	}
	return sessions
}

// Get returns a session, or nil if none has the id.
func (d *SessionDirectory) Get(ctx context.Context, id int64) (*domain.TrainingSession, error) {
	if err := domain.ValidateID("training session", id); err != nil {
		return nil, err
	}
	s, err := d.sessions.FindByID(ctx, d.db, id)
	if err != nil {
		d.logger.Error("fetch training session failed", "error", err, "session_id", id)
		return nil, storeError("failed to fetch training session", err)
	}
	return s, nil
}

// Create stores a new session.
func (d *SessionDirectory) Create(ctx context.Context, in domain.NewTrainingSession) (*domain.TrainingSession, error) {
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	s, err := d.sessions.Create(ctx, d.db, in)
	if err != nil {
		d.logger.Error("create training session failed", "error", err)
		return nil, storeError("failed to create training session", err)
	}
	if s == nil {
		return nil, domain.ErrInternal("failed to create training session", nil)
	}
	d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntitySession, domain.ActionCreated, s.ID))
	return s, nil
}

// Update applies a partial update, always stamping updated_at.
func (d *SessionDirectory) Update(ctx context.Context, id int64, patch domain.SessionPatch) (*domain.TrainingSession, error) {
	if err := domain.ValidateID("training session", id); err != nil {
		return nil, err
	}
	if err := domain.Validate(patch); err != nil {
		return nil, err
	}
	s, err := d.sessions.Update(ctx, d.db, id, patch)
	if err != nil {
		d.logger.Error("update training session failed", "error", err, "session_id", id)
		return nil, storeError("failed to update training session", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound("training session", strconv.FormatInt(id, 10))
	}
	d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntitySession, domain.ActionUpdated, s.ID))
	return s, nil
}

// Delete removes a session together with its attendance rows. Deleting an
// id that does not exist succeeds.
func (d *SessionDirectory) Delete(ctx context.Context, id int64) error {
	if err := domain.ValidateID("training session", id); err != nil {
		return err
	}
	n, err := d.sessions.Delete(ctx, d.db, id)
	if err != nil {
		d.logger.Error("delete training session failed", "error", err, "session_id", id)
		return storeError("failed to delete training session", err)
	}
	if n > 0 {
		d.changes.Announce(ctx, domain.NewChangeEvent(domain.EntitySession, domain.ActionDeleted, id))
	}
	return nil
}
