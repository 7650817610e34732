package listing

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxCityLength        = 100
	maxAreaLength        = 100

	// maxPrice is the largest value the NUMERIC(14,2) price column holds.
	maxPrice = 999_999_999_999.99
)

// ImageUpload is one image file received with a listing.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Details holds the fixed listing fields shared by create and update.
type Details struct {
	Title       string
	Description string
	Price       float64
	Location    domain.Location
}

func (d *Details) normalize() {
	d.Title = domain.NormalizeText(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Location.City = domain.NormalizeText(d.Location.City)
	d.Location.Area = domain.NormalizeText(d.Location.Area)
}

func (d Details) fieldErrors() []domain.FieldError {
	var errs []domain.FieldError

	switch {
	case d.Title == "":
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	case len(d.Title) > maxTitleLength:
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", maxTitleLength)})
	}

	switch {
	case d.Description == "":
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	case len(d.Description) > maxDescriptionLength:
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", maxDescriptionLength)})
	}

	switch {
	case d.Price < 0 || math.IsNaN(d.Price) || math.IsInf(d.Price, 0):
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be a number >= 0"})
	case d.Price > maxPrice:
		errs = append(errs, domain.FieldError{Field: "price", Message: fmt.Sprintf("must be <= %.2f", maxPrice)})
	}

	switch {
	case d.Location.City == "":
		errs = append(errs, domain.FieldError{Field: "location.city", Message: "required"})
	case len(d.Location.City) > maxCityLength:
		errs = append(errs, domain.FieldError{Field: "location.city", Message: fmt.Sprintf("max %d characters", maxCityLength)})
	}
	if len(d.Location.Area) > maxAreaLength {
		errs = append(errs, domain.FieldError{Field: "location.area", Message: fmt.Sprintf("max %d characters", maxAreaLength)})
	}

	if c := d.Location.Coordinates; c != nil {
		if c.Lat < -90 || c.Lat > 90 {
			errs = append(errs, domain.FieldError{Field: "location.coordinates.lat", Message: "must be between -90 and 90"})
		}
		if c.Lng < -180 || c.Lng > 180 {
			errs = append(errs, domain.FieldError{Field: "location.coordinates.lng", Message: "must be between -180 and 180"})
		}
	}

	return errs
}

// CreateInput holds the parameters for posting a listing.
type CreateInput struct {
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Details      Details
	CustomFields map[string]any
	Images       []ImageUpload
}

// UpdateInput is a full replacement of a listing's editable parts.
//
// KeepImages lists the public IDs of current images to keep; new uploads are
// appended after them and every other current image is dropped. With a nil
// KeepImages, uploads replace all current images and no uploads keep them.
// A nil Status keeps the current status.
type UpdateInput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Details      Details
	CustomFields map[string]any
	Images       []ImageUpload
	KeepImages   *[]string
	Status       *domain.ListingStatus
}

func imageErrors(count, maxImages int) []domain.FieldError {
	if maxImages > 0 && count > maxImages {
		return []domain.FieldError{{Field: "images", Message: fmt.Sprintf("max %d images", maxImages)}}
	}
	return nil
}

// selectImages splits current into the images an update keeps and the ones
// it drops. Unknown or repeated IDs in keep are reported as field errors.
func selectImages(current []domain.Image, keep *[]string, uploads int) (kept, dropped []domain.Image, errs []domain.FieldError) {
	if keep == nil {
		if uploads == 0 {
			return current, nil, nil
		}
		return nil, current, nil
	}

	byID := make(map[string]domain.Image, len(current))
	for _, img := range current {
		byID[img.PublicID] = img
	}

	chosen := make(map[string]bool, len(*keep))
	for i, id := range *keep {
		field := fmt.Sprintf("existingImages[%d]", i)
		img, ok := byID[id]
		switch {
		case !ok:
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("unknown image %q", id)})
		case chosen[id]:
			errs = append(errs, domain.FieldError{Field: field, Message: "duplicate image"})
		default:
			chosen[id] = true
			kept = append(kept, img)
		}
	}

	for _, img := range current {
		if !chosen[img.PublicID] {
			dropped = append(dropped, img)
		}
	}
	return kept, dropped, errs
}

func statusErrors(status *domain.ListingStatus) []domain.FieldError {
	if status == nil {
		return nil
	}
	switch *status {
	case domain.ListingStatusActive, domain.ListingStatusSold:
		return nil
	}
	return []domain.FieldError{{Field: "status", Message: "must be active or sold"}}
}
