package listing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
)

// Update replaces a listing's fixed and custom fields. Only the owner may
// update. Custom fields are revalidated against the listing's category and
// replaced wholesale. Images dropped by the update are deleted from the
// store after the update is stored.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Listing, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	input.Details.normalize()
	errs := input.Details.fieldErrors()
	kept, dropped, imgErrs := selectImages(current.Images, input.KeepImages, len(input.Images))
	errs = append(errs, imgErrs...)
	errs = append(errs, imageErrors(len(kept)+len(input.Images), s.opts.MaxImages)...)
	errs = append(errs, statusErrors(input.Status)...)
	if input.Status != nil && *input.Status == domain.ListingStatusActive && current.Status == domain.ListingStatusExpired {
		errs = append(errs, domain.FieldError{Field: "status", Message: "expired listings cannot be reactivated"})
	}

	category, err := s.getCategory(ctx, current.CategoryID)
	if err != nil {
		return nil, err
	}

	attrs, violations := schema.ValidateCategory(category, input.CustomFields)
	if len(violations) > 0 {
		errs = append(errs, schema.NewValidationError(violations).Errors...)
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	next := *current
	next.Title = input.Details.Title
	next.Description = input.Details.Description
	next.Price = input.Details.Price
	next.Location = input.Details.Location
	next.CustomFields = attrs
	if input.Status != nil {
		next.Status = *input.Status
	}

	var uploaded []domain.Image
	if len(input.Images) > 0 {
		uploaded, err = s.uploadImages(ctx, input.Images)
		if err != nil {
			return nil, err
		}
	}
	next.Images = append(slices.Clip(kept), uploaded...)

	updated, err := s.listings.Update(ctx, &next)
	if err != nil {
		s.discardImages(context.WithoutCancel(ctx), uploaded)
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.discardImages(ctx, dropped)

	s.log.InfoContext(ctx, "listing updated",
		slog.String("listing_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
		slog.Int("images_added", len(uploaded)),
		slog.Int("images_dropped", len(dropped)),
	)

	return updated, nil
}
