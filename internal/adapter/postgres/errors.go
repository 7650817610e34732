package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity and its key ("category 3f2a...: not found").
//
// Timeouts and broken connections map to domain.ErrStoreUnavailable while
// keeping the original error in the chain. context.Canceled passes through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case "23514", "22003": // check_violation, numeric_value_out_of_range
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		case "57014", "55P03": // query_canceled (statement_timeout), lock_not_available
			return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrStoreUnavailable, err)
		}
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if isUnavailable(err) {
		return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
