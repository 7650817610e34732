package category

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
)

// Get returns a category with its active subcategories sorted by name.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Details, error) {
	c, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.categories.List(ctx, domain.CategoryFilter{
		Scope:      domain.ParentScopeChildren,
		ParentID:   id,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	return &Details{Category: c, Subcategories: children}, nil
}

// List returns the top-level categories when parentID is nil and the direct
// children of *parentID otherwise, sorted by name.
func (s *Service) List(ctx context.Context, parentID *uuid.UUID, activeOnly bool) ([]domain.Category, error) {
	filter := domain.CategoryFilter{Scope: domain.ParentScopeTop, ActiveOnly: activeOnly}
	if parentID != nil {
		filter.Scope = domain.ParentScopeChildren
		filter.ParentID = *parentID
	}

	categories, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Schema renders the category's custom fields as a JSON Schema document.
func (s *Service) Schema(ctx context.Context, id uuid.UUID) (*jsonschema.Schema, error) {
	c, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return schema.JSONSchema(c), nil
}

// Preview validates a sample attribute map without persisting anything.
func (s *Service) Preview(ctx context.Context, input PreviewInput) (schema.PreviewResult, error) {
	if input.Fields != nil {
		fields := domain.NormalizeFieldDefinitions(*input.Fields)
		if errs := domain.ValidateFieldDefinitions(fields); len(errs) > 0 {
			return schema.PreviewResult{}, domain.NewValidationErrors(errs)
		}
		return schema.Preview(fields, input.CustomFields), nil
	}

	c, err := s.getCategory(ctx, input.CategoryID)
	if err != nil {
		return schema.PreviewResult{}, err
	}
	return schema.Preview(c.Fields, input.CustomFields), nil
}
