package listing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Delete removes a listing owned by userID and then its stored images.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthorized
	}

	l, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	s.discardImages(ctx, l.Images)

	s.log.InfoContext(ctx, "listing deleted",
		slog.String("listing_id", id.String()),
		slog.Int("images", len(l.Images)),
	)
	return nil
}
