package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Update applies a partial update. The slug is regenerated only when the
// name actually changes. Existing listings are not revalidated against a
// changed schema.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Category, error) {
	if input.Fields != nil {
		normalized := domain.NormalizeFieldDefinitions(*input.Fields)
		input.Fields = &normalized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.getCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.getCategory(ctx, *input.ParentID); err != nil {
			return nil, fmt.Errorf("parent category %w", err)
		}
	}

	params := domain.CategoryUpdateParams{
		ParentID:    input.ParentID,
		ClearParent: input.ClearParent && input.ParentID == nil,
		Fields:      input.Fields,
		IsActive:    input.IsActive,
	}
	if input.Name != nil {
		name := domain.NormalizeText(*input.Name)
		if name != current.Name {
			slug := domain.Slugify(name)
			params.Name = &name
			params.Slug = &slug
		}
	}
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		params.Description = &d
	}
	if input.Icon != nil {
		icon := strings.TrimSpace(*input.Icon)
		params.Icon = &icon
	}

	updated, err := s.categories.Update(ctx, input.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.log.InfoContext(ctx, "category updated",
		slog.String("category_id", updated.ID.String()),
		slog.String("slug", updated.Slug),
		slog.Bool("schema_changed", input.Fields != nil),
	)

	return updated, nil
}
