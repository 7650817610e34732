package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Delete removes a category that no listing references. The row is locked
// for the duration of the check; a referenced category fails with
// domain.ErrCategoryInUse.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categories.LockForUpdate(txCtx, id); err != nil {
			return notFound(err, id)
		}

		n, err := s.categories.CountListings(txCtx, id)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("category %s has %d listings: %w", id, n, domain.ErrCategoryInUse)
		}

		if err := s.categories.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "category deleted", slog.String("category_id", id.String()))
	return nil
}
