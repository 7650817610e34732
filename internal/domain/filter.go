package domain

import "github.com/google/uuid"

// ListingFilter is a listing search request as received from a client.
// Attributes holds the category-specific predicates keyed exactly as sent
// (e.g. "make", "minYear", "maxYear").
type ListingFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	City       string
	Search     string
	// Status defaults to active when nil.
	Status     *ListingStatus
	Attributes map[string]string
	Sort       string
	Page       int
	Limit      int
}

// AttrOp is the predicate shape applied to one custom field.
type AttrOp string

const (
	// AttrOpEquals matches the stored string exactly (dropdown, radio).
	AttrOpEquals AttrOp = "eq"
	// AttrOpContains matches a case-insensitive substring (text).
	AttrOpContains AttrOp = "contains"
	// AttrOpRange matches a number within [Min, Max]; either bound may be nil.
	AttrOpRange AttrOp = "range"
)

// AttrCondition is one resolved custom field predicate.
type AttrCondition struct {
	Field string
	Op    AttrOp
	Value string
	Min   *float64
	Max   *float64
}

// SortField is a listing column results can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByPrice     SortField = "price"
	SortByViews     SortField = "views"
)

// QueryPlan is a store-neutral listing query: a conjunction of every
// non-empty predicate, ordered and paginated.
type QueryPlan struct {
	CategoryID *uuid.UUID
	Status     *ListingStatus
	MinPrice   *float64
	MaxPrice   *float64
	City       string
	Search     string
	Attributes []AttrCondition

	SortBy   SortField
	SortDesc bool
	Page     int
	Limit    int
}

// Offset returns the number of rows to skip for the plan's page.
func (p QueryPlan) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ListingPage is one page of search results.
type ListingPage struct {
	Listings    []Listing
	Total       int
	TotalPages  int
	CurrentPage int
}

// NewListingPage computes page totals for a result set.
func NewListingPage(listings []Listing, total, page, limit int) ListingPage {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return ListingPage{
		Listings:    listings,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
