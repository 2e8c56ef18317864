package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/squadroom/platform/internal/domain"
)

// Announcer is told about every committed mutation.
type Announcer interface {
	Announce(ctx context.Context, evt domain.ChangeEvent)
}

// storeError classifies a store failure. msg is the generic user-visible
// message for the operation ("failed to create player").
func storeError(msg string, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return &domain.AppError{Code: domain.CodeConflict, Message: msg + ": record already exists", Status: 409, Cause: err}
		case "23503": // foreign_key_violation
			return &domain.AppError{Code: domain.CodeNotFound, Message: msg + ": referenced record does not exist", Status: 404, Cause: err}
		case "23514", "23502", "22P02", "22007", "22008", "22003": // check, not_null, invalid text/datetime, out of range
			return &domain.AppError{Code: domain.CodeValidation, Message: msg + ": rejected by store constraints", Status: 400, Cause: err}
		}
	}
	return domain.ErrUnavailable(msg, err)
}
