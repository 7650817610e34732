package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// View returns a listing and counts one view. The counter is advisory: if
// the increment fails the listing is still returned.
func (s *Service) View(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.listings.IncrementViews(ctx, id)
	switch {
	case err == nil:
		l.Views = views
	case errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", id, domain.ErrListingNotFound)
	default:
		s.log.WarnContext(ctx, "increment views failed",
			slog.String("listing_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
	return l, nil
}

// MyListings returns every listing owned by userID, newest first, in any
// status.
func (s *Service) MyListings(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	listings, err := s.listings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user listings: %w", err)
	}
	return listings, nil
}
