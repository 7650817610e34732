package listing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
)

const uploadConcurrency = 4

// Create posts a listing for input.UserID. Fixed fields and custom fields
// are validated together and all problems are reported at once. Images are
// uploaded only after validation passes and are removed again if the
// listing cannot be stored.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Listing, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	input.Details.normalize()
	errs := input.Details.fieldErrors()
	errs = append(errs, imageErrors(len(input.Images), s.opts.MaxImages)...)

	if input.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
		return nil, domain.NewValidationErrors(errs)
	}

	category, err := s.getCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		errs = append(errs, domain.FieldError{Field: "category", Message: "category is not active"})
	}

	attrs, violations := schema.ValidateCategory(category, input.CustomFields)
	if len(violations) > 0 {
		errs = append(errs, schema.NewValidationError(violations).Errors...)
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	images, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.listings.Create(ctx, &domain.Listing{
		UserID:       input.UserID,
		CategoryID:   category.ID,
		Title:        input.Details.Title,
		Description:  input.Details.Description,
		Price:        input.Details.Price,
		Location:     input.Details.Location,
		Images:       images,
		CustomFields: attrs,
		Status:       domain.ListingStatusActive,
		ExpiresAt:    now.Add(s.opts.TTL),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.discardImages(context.WithoutCancel(ctx), images)
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.InfoContext(ctx, "listing created",
		slog.String("listing_id", created.ID.String()),
		slog.String("category_id", created.CategoryID.String()),
		slog.String("user_id", created.UserID.String()),
		slog.Int("images", len(created.Images)),
	)

	return created, nil
}

// uploadImages stores uploads concurrently and returns them in input order.
// On failure every image already stored is removed.
func (s *Service) uploadImages(ctx context.Context, uploads []ImageUpload) ([]domain.Image, error) {
	if len(uploads) == 0 {
		return []domain.Image{}, nil
	}

	images := make([]domain.Image, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, u := range uploads {
		g.Go(func() error {
			img, err := s.images.Upload(gctx, u.Filename, u.ContentType, u.Body)
			if err != nil {
				return fmt.Errorf("upload image %q: %w", u.Filename, err)
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stored := make([]domain.Image, 0, len(images))
		for _, img := range images {
			if img.PublicID != "" {
				stored = append(stored, img)
			}
		}
		s.discardImages(context.WithoutCancel(ctx), stored)
		return nil, err
	}
	return images, nil
}
