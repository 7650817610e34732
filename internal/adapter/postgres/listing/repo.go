// Package listing implements the Listing repository using PostgreSQL.
// customFields is stored as a JSONB object; search queries are built from a
// domain.QueryPlan with squirrel.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Repo provides listing persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new listing repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "user_id", "category_id", "title", "description", "price",
	"city", "area", "lat", "lng", "images", "custom_fields",
	"status", "views", "expires_at", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

type imageRow struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

const incrementViewsSQL = `UPDATE listings SET views = views + 1 WHERE id = $1 RETURNING views`

const expireSQL = `
UPDATE listings
SET status = 'expired', updated_at = $1
WHERE status = 'active' AND expires_at <= $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a listing by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	sql, args, err := postgres.Builder().Select(columns...).From("listings").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get listing: %w", err)
	}

	l, err := scanListing(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "listing", id)
	}
	return &l, nil
}

// ListByUser returns every listing owned by userID regardless of status,
// newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	q := postgres.Builder().Select(columns...).From("listings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	return r.query(ctx, q, "user "+userID.String())
}

// Find returns one page of listings matching plan.
func (r *Repo) Find(ctx context.Context, plan domain.QueryPlan) ([]domain.Listing, error) {
	where, err := planPredicates(plan)
	if err != nil {
		return nil, err
	}

	q := postgres.Builder().Select(columns...).From("listings").
		OrderBy(orderBy(plan)...).
		Limit(uint64(plan.Limit)).
		Offset(uint64(plan.Offset()))
	if len(where) > 0 {
		q = q.Where(where)
	}

	return r.query(ctx, q, "search")
}

// Count returns the number of listings matching plan, ignoring paging.
func (r *Repo) Count(ctx context.Context, plan domain.QueryPlan) (int, error) {
	where, err := planPredicates(plan)
	if err != nil {
		return 0, err
	}

	q := postgres.Builder().Select("count(*)").From("listings")
	if len(where) > 0 {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count listings: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "listings", "count")
	}
	return n, nil
}

func (r *Repo) query(ctx context.Context, q squirrel.SelectBuilder, key string) ([]domain.Listing, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list listings: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "listings", key)
	}
	defer rows.Close()

	result := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "listings", key)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts l and returns the stored row. ID and timestamps are
// assigned when zero.
// Returns domain.ErrNotFound if the category does not exist.
func (r *Repo) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}

	images, attrs, err := marshalJSONColumns(l)
	if err != nil {
		return nil, err
	}
	lat, lng := coordinates(l.Location)

	sql, args, err := postgres.Builder().Insert("listings").
		Columns(columns...).
		Values(
			l.ID, l.UserID, l.CategoryID, l.Title, l.Description, l.Price,
			l.Location.City, l.Location.Area, lat, lng, images, attrs,
			string(l.Status), l.Views, l.ExpiresAt, l.CreatedAt, l.UpdatedAt,
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert listing: %w", err)
	}

	created, err := scanListing(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "listing", l.ID)
	}
	return &created, nil
}

// Update overwrites the mutable columns of l: title, description, price,
// location, images, custom fields and status. Owner, category, views and
// expiry are left untouched.
func (r *Repo) Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	images, attrs, err := marshalJSONColumns(l)
	if err != nil {
		return nil, err
	}
	lat, lng := coordinates(l.Location)

	sql, args, err := postgres.Builder().Update("listings").
		SetMap(map[string]any{
			"title":         l.Title,
			"description":   l.Description,
			"price":         l.Price,
			"city":          l.Location.City,
			"area":          l.Location.Area,
			"lat":           lat,
			"lng":           lng,
			"images":        images,
			"custom_fields": attrs,
			"status":        string(l.Status),
			"updated_at":    time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": l.ID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update listing: %w", err)
	}

	updated, err := scanListing(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "listing", l.ID)
	}
	return &updated, nil
}

// Delete removes a listing. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "listing", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// IncrementViews adds one to the view counter and returns the new value.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var views int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, incrementViewsSQL, id).Scan(&views); err != nil {
		return 0, postgres.MapError(err, "listing", id)
	}
	return views, nil
}

// ExpireBefore marks active listings whose expiry is at or before now as
// expired and returns how many changed. Sold listings are never touched.
func (r *Repo) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, expireSQL, now)
	if err != nil {
		return 0, postgres.MapError(err, "listings", "expire")
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func coordinates(loc domain.Location) (lat, lng *float64) {
	if loc.Coordinates == nil {
		return nil, nil
	}
	return &loc.Coordinates.Lat, &loc.Coordinates.Lng
}

func marshalJSONColumns(l *domain.Listing) (images, attrs []byte, err error) {
	rows := make([]imageRow, len(l.Images))
	for i, img := range l.Images {
		rows[i] = imageRow{URL: img.URL, PublicID: img.PublicID}
	}
	if images, err = json.Marshal(rows); err != nil {
		return nil, nil, fmt.Errorf("marshal listing images: %w", err)
	}

	custom := l.CustomFields
	if custom == nil {
		custom = domain.Attributes{}
	}
	if attrs, err = json.Marshal(custom); err != nil {
		return nil, nil, fmt.Errorf("marshal listing custom fields: %w", err)
	}
	return images, attrs, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var (
		l        domain.Listing
		lat, lng *float64
		images   []byte
		attrs    []byte
		status   string
	)
	if err := row.Scan(
		&l.ID, &l.UserID, &l.CategoryID, &l.Title, &l.Description, &l.Price,
		&l.Location.City, &l.Location.Area, &lat, &lng, &images, &attrs,
		&status, &l.Views, &l.ExpiresAt, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return domain.Listing{}, err
	}

	l.Status = domain.ListingStatus(status)
	if lat != nil && lng != nil {
		l.Location.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}

	var rows []imageRow
	if len(images) > 0 {
		if err := json.Unmarshal(images, &rows); err != nil {
			return domain.Listing{}, fmt.Errorf("unmarshal listing images: %w", err)
		}
	}
	l.Images = make([]domain.Image, len(rows))
	for i, row := range rows {
		l.Images[i] = domain.Image{URL: row.URL, PublicID: row.PublicID}
	}

	l.CustomFields = domain.Attributes{}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &l.CustomFields); err != nil {
			return domain.Listing{}, fmt.Errorf("unmarshal listing custom fields: %w", err)
		}
	}
	return l, nil
}
