package listing

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// numericAttr reads a custom field as numeric only when it is stored as a
// JSON number; CASE keeps the cast from running on anything else.
const numericAttr = "CASE WHEN jsonb_typeof(custom_fields -> ?) = 'number' THEN (custom_fields ->> ?)::numeric END"

// planPredicates renders every condition of plan as a squirrel predicate.
// The result is a conjunction; an empty plan matches every row.
func planPredicates(plan domain.QueryPlan) (squirrel.And, error) {
	where := squirrel.And{}

	if plan.CategoryID != nil {
		where = append(where, squirrel.Eq{"category_id": *plan.CategoryID})
	}
	if plan.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*plan.Status)})
	}
	if plan.MinPrice != nil {
		where = append(where, squirrel.GtOrEq{"price": *plan.MinPrice})
	}
	if plan.MaxPrice != nil {
		where = append(where, squirrel.LtOrEq{"price": *plan.MaxPrice})
	}
	if plan.City != "" {
		where = append(where, squirrel.Expr("city ILIKE '%' || ? || '%'", postgres.EscapeLike(plan.City)))
	}
	if plan.Search != "" {
		s := postgres.EscapeLike(plan.Search)
		where = append(where, squirrel.Expr("(title ILIKE '%' || ? || '%' OR description ILIKE '%' || ? || '%')", s, s))
	}

	for _, c := range plan.Attributes {
		switch c.Op {
		case domain.AttrOpEquals:
			where = append(where, squirrel.Expr("custom_fields ->> ? = ?", c.Field, c.Value))
		case domain.AttrOpContains:
			where = append(where, squirrel.Expr("custom_fields ->> ? ILIKE '%' || ? || '%'", c.Field, postgres.EscapeLike(c.Value)))
		case domain.AttrOpRange:
			if c.Min == nil && c.Max == nil {
				where = append(where, squirrel.Expr(numericAttr+" IS NOT NULL", c.Field, c.Field))
			}
			if c.Min != nil {
				where = append(where, squirrel.Expr(numericAttr+" >= ?", c.Field, c.Field, *c.Min))
			}
			if c.Max != nil {
				where = append(where, squirrel.Expr(numericAttr+" <= ?", c.Field, c.Field, *c.Max))
			}
		default:
			return nil, fmt.Errorf("listing filter %q: unknown operator %q", c.Field, c.Op)
		}
	}

	return where, nil
}

// orderBy returns the ORDER BY terms for plan. id breaks ties so pages are
// stable.
func orderBy(plan domain.QueryPlan) []string {
	col := "created_at"
	switch plan.SortBy {
	case domain.SortByPrice:
		col = "price"
	case domain.SortByViews:
		col = "views"
	}
	dir := "ASC"
	if plan.SortDesc {
		dir = "DESC"
	}
	return []string{col + " " + dir, "id " + dir}
}
