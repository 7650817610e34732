package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

type categoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, filter domain.CategoryFilter) ([]domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountListings(ctx context.Context, id uuid.UUID) (int, error)
	LockForUpdate(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages category schemas.
type Service struct {
	categories categoryRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new category service.
func NewService(log *slog.Logger, categories categoryRepo, tx txManager) *Service {
	return &Service{
		categories: categories,
		tx:         tx,
		log:        log.With("service", "category"),
	}
}

// Details is a category together with its active direct children.
type Details struct {
	Category      *domain.Category
	Subcategories []domain.Category
}

func (s *Service) getCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return c, nil
}

// notFound rewrites a generic store not-found into ErrCategoryNotFound.
func notFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, domain.ErrCategoryNotFound)
	}
	return fmt.Errorf("get category: %w", err)
}
