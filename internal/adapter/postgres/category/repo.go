// Package category implements the Category repository using PostgreSQL.
// Field definitions are stored in declared order as a JSONB array.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	postgres "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "name", "slug", "description", "icon", "parent_id", "fields", "is_active", "created_at", "updated_at",
}

// fieldRow is the JSON layout of one stored field definition.
type fieldRow struct {
	FieldName   string   `json:"fieldName"`
	FieldType   string   `json:"fieldType"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
}

const lockSQL = `SELECT id FROM categories WHERE id = $1 FOR UPDATE`

const countListingsSQL = `SELECT count(*) FROM listings WHERE category_id = $1`

const upsertBySlugSQL = `
INSERT INTO categories (id, name, slug, description, icon, parent_id, fields, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
ON CONFLICT (slug) DO UPDATE SET
    name        = EXCLUDED.name,
    description = EXCLUDED.description,
    icon        = EXCLUDED.icon,
    fields      = EXCLUDED.fields,
    is_active   = EXCLUDED.is_active,
    updated_at  = EXCLUDED.updated_at
RETURNING (xmax = 0) AS inserted`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a category by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetBySlug returns a category by its unique slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug}, slug)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, key any) (*domain.Category, error) {
	sql, args, err := postgres.Builder().Select(columns...).From("categories").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get category: %w", err)
	}

	c, err := scanCategory(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", key)
	}
	return &c, nil
}

// List returns categories matching filter ordered by name.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.CategoryFilter) ([]domain.Category, error) {
	q := postgres.Builder().Select(columns...).From("categories").OrderBy("name ASC")

	switch filter.Scope {
	case domain.ParentScopeTop:
		q = q.Where(squirrel.Eq{"parent_id": nil})
	case domain.ParentScopeChildren:
		q = q.Where(squirrel.Eq{"parent_id": filter.ParentID})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "categories", "list")
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "categories", "list")
	}

	return result, nil
}

// CountListings returns how many listings reference the category.
func (r *Repo) CountListings(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countListingsSQL, id).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "category", id)
	}
	return n, nil
}

// LockForUpdate takes a row lock on the category for the rest of the
// surrounding transaction. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, lockSQL, id).Scan(&locked); err != nil {
		return postgres.MapError(err, "category", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts c and returns the stored row. ID and timestamps are
// assigned when zero.
// Returns domain.ErrAlreadyExists on a name or slug collision.
func (r *Repo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	fields, err := marshalFields(c.Fields)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().
		Insert("categories").
		Columns(columns...).
		Values(c.ID, c.Name, c.Slug, c.Description, c.Icon, c.ParentID, fields, c.IsActive, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert category: %w", err)
	}

	created, err := scanCategory(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", c.Slug)
	}
	return &created, nil
}

// Update applies the non-nil fields of params and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error) {
	q := postgres.Builder().Update("categories").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns())

	if params.Name != nil {
		q = q.Set("name", *params.Name)
	}
	if params.Slug != nil {
		q = q.Set("slug", *params.Slug)
	}
	if params.Description != nil {
		q = q.Set("description", *params.Description)
	}
	if params.Icon != nil {
		q = q.Set("icon", *params.Icon)
	}
	switch {
	case params.ClearParent:
		q = q.Set("parent_id", nil)
	case params.ParentID != nil:
		q = q.Set("parent_id", *params.ParentID)
	}
	if params.Fields != nil {
		fields, err := marshalFields(*params.Fields)
		if err != nil {
			return nil, err
		}
		q = q.Set("fields", fields)
	}
	if params.IsActive != nil {
		q = q.Set("is_active", *params.IsActive)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update category: %w", err)
	}

	updated, err := scanCategory(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}
	return &updated, nil
}

// Delete removes a category.
// Returns domain.ErrNotFound if it does not exist and domain.ErrCategoryInUse
// if listings still reference it.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("category %s: %w", id, domain.ErrCategoryInUse)
		}
		return postgres.MapError(err, "category", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpsertBySlug inserts c or, when its slug exists, overwrites the stored
// name, description, icon, fields and active flag. The parent is only set on
// insert. Reports whether a new row was inserted.
func (r *Repo) UpsertBySlug(ctx context.Context, c *domain.Category) (bool, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	fields, err := marshalFields(c.Fields)
	if err != nil {
		return false, err
	}

	var inserted bool
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertBySlugSQL,
		c.ID, c.Name, c.Slug, c.Description, c.Icon, c.ParentID, fields, c.IsActive, time.Now().UTC(),
	).Scan(&inserted)
	if err != nil {
		return false, postgres.MapError(err, "category", c.Slug)
	}
	return inserted, nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func joinColumns() string {
	return strings.Join(columns, ", ")
}

func marshalFields(fields []domain.FieldDefinition) ([]byte, error) {
	rows := make([]fieldRow, len(fields))
	for i, f := range fields {
		rows[i] = fieldRow{
			FieldName:   f.Name,
			FieldType:   string(f.Type),
			Options:     f.Options,
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal category fields: %w", err)
	}
	return data, nil
}

func unmarshalFields(data []byte) ([]domain.FieldDefinition, error) {
	var rows []fieldRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("unmarshal category fields: %w", err)
		}
	}
	fields := make([]domain.FieldDefinition, len(rows))
	for i, row := range rows {
		fields[i] = domain.FieldDefinition{
			Name:        row.FieldName,
			Type:        domain.FieldType(row.FieldType),
			Options:     row.Options,
			Required:    row.Required,
			Placeholder: row.Placeholder,
		}
	}
	return fields, nil
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var (
		c      domain.Category
		fields []byte
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.ParentID,
		&fields, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return domain.Category{}, err
	}

	defs, err := unmarshalFields(fields)
	if err != nil {
		return domain.Category{}, err
	}
	c.Fields = defs
	return c, nil
}
