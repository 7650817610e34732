package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Create adds a category. The slug is derived from the name; a name or slug
// collision fails with domain.ErrAlreadyExists and an unknown parent with
// domain.ErrCategoryNotFound.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Category, error) {
	input.Fields = domain.NormalizeFieldDefinitions(input.Fields)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.getCategory(ctx, *input.ParentID); err != nil {
			return nil, fmt.Errorf("parent category %w", err)
		}
	}

	name := domain.NormalizeText(input.Name)
	created, err := s.categories.Create(ctx, &domain.Category{
		Name:        name,
		Slug:        domain.Slugify(name),
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		ParentID:    input.ParentID,
		Fields:      input.Fields,
		IsActive:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", created.ID.String()),
		slog.String("slug", created.Slug),
		slog.Int("fields", len(created.Fields)),
	)

	return created, nil
}
