package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

type seedField struct {
	FieldName   string   `json:"fieldName"`
	FieldType   string   `json:"fieldType"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// SeedCategory inserts an active top-level category with a unique name and
// the given fields. The stored JSON layout matches the category repository.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, fields ...domain.FieldDefinition) domain.Category {
	t.Helper()
	ctx := context.Background()

	name := "Category " + uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      domain.Slugify(name),
		Fields:    fields,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	rows := make([]seedField, len(fields))
	for i, f := range fields {
		rows[i] = seedField{FieldName: f.Name, FieldType: string(f.Type), Options: f.Options, Required: f.Required, Placeholder: f.Placeholder}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory marshal fields: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, fields, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, $5, $6)`,
		c.ID, c.Name, c.Slug, data, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert: %v", err)
	}

	return c
}

// SeedListing inserts an active listing in categoryID owned by a random user.
func SeedListing(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, attrs domain.Attributes) domain.Listing {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if attrs == nil {
		attrs = domain.Attributes{}
	}
	l := domain.Listing{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CategoryID:   categoryID,
		Title:        "Listing " + uniqueSuffix(),
		Description:  "seeded listing",
		Price:        100,
		Location:     domain.Location{City: "Almaty"},
		Images:       []domain.Image{},
		CustomFields: attrs,
		Status:       domain.ListingStatusActive,
		ExpiresAt:    now.Add(30 * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("testhelper: SeedListing marshal attributes: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO listings (id, user_id, category_id, title, description, price, city, custom_fields, status, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.UserID, l.CategoryID, l.Title, l.Description, l.Price, l.Location.City, data, string(l.Status), l.ExpiresAt, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedListing insert: %v", err)
	}

	return l
}
