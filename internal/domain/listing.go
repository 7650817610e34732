package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a classified ad owned by one user, in exactly one category.
type Listing struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Title        string
	Description  string
	Price        float64
	Location     Location
	Images       []Image
	CustomFields Attributes
	Status       ListingStatus
	Views        int64
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwnedBy reports whether userID owns the listing.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && l.UserID == userID
}

// IsExpiredAt reports whether an active listing has passed its expiry.
func (l *Listing) IsExpiredAt(now time.Time) bool {
	return l.Status == ListingStatusActive && !l.ExpiresAt.After(now)
}

// Location is where the listed item is offered. City is required.
type Location struct {
	City        string
	Area        string
	Coordinates *Coordinates
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Image references an uploaded listing image held by the image store.
type Image struct {
	URL      string
	PublicID string
}

// ListingUpdateParams holds the replaceable parts of a listing.
// CustomFields is always replaced wholesale; Images is replaced only when non-nil.
type ListingUpdateParams struct {
	Title        string
	Description  string
	Price        float64
	Location     Location
	CustomFields Attributes
	Images       []Image
	Status       *ListingStatus
}
