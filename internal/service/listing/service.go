package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type listingRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	Find(ctx context.Context, plan domain.QueryPlan) ([]domain.Listing, error)
	Count(ctx context.Context, plan domain.QueryPlan) (int, error)
	Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type categoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

type imageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (domain.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options holds the listing business limits.
type Options struct {
	TTL             time.Duration
	MaxImages       int
	DefaultPageSize int
	SearchPageSize  int
	MaxPageSize     int
}

// Service implements listing CRUD, search and expiry.
type Service struct {
	log        *slog.Logger
	listings   listingRepo
	categories categoryRepo
	images     imageStore
	opts       Options
	now        func() time.Time
}

// NewService creates a new listing service.
func NewService(
	log *slog.Logger,
	listings listingRepo,
	categories categoryRepo,
	images imageStore,
	opts Options,
) *Service {
	return &Service{
		log:        log.With("service", "listing"),
		listings:   listings,
		categories: categories,
		images:     images,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) getListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrListingNotFound)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (s *Service) getCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// getOwned loads a listing and checks that userID owns it. A missing
// listing is reported before ownership.
func (s *Service) getOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Listing, error) {
	l, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrForbidden)
	}
	return l, nil
}

// discardImages removes images from the store. Failures are logged only.
func (s *Service) discardImages(ctx context.Context, images []domain.Image) {
	for _, img := range images {
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			s.log.WarnContext(ctx, "delete image failed",
				slog.String("public_id", img.PublicID),
				slog.String("error", err.Error()),
			)
		}
	}
}
