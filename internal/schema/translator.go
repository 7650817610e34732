package schema

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Paging bounds the page size a filter may request.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

const defaultSort = "-createdAt"

var sortFields = map[string]domain.SortField{
	"createdAt": domain.SortByCreatedAt,
	"price":     domain.SortByPrice,
	"views":     domain.SortByViews,
}

// Translate turns a listing filter into a store-neutral query plan.
//
// Attribute keys are resolved against c's current schema. "<field>" on a
// number is an equality range, "min<Field>" and "max<Field>" are range
// bounds, dropdown and radio fields match exactly and text fields match a
// substring. Checkbox fields cannot be filtered. A key the schema does not
// define becomes an exact-match predicate on that key. Without a category
// any attribute key is ambiguous.
func Translate(f domain.ListingFilter, c *domain.Category, p Paging) (domain.QueryPlan, error) {
	var errs []domain.FieldError

	plan := domain.QueryPlan{
		CategoryID: f.CategoryID,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		City:       strings.TrimSpace(f.City),
		Search:     strings.TrimSpace(f.Search),
	}

	status := domain.ListingStatusActive
	if f.Status != nil {
		status = *f.Status
		if !status.IsValid() {
			errs = append(errs, domain.FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)})
		}
	}
	plan.Status = &status

	if f.MinPrice != nil && *f.MinPrice < 0 {
		errs = append(errs, domain.FieldError{Field: "minPrice", Message: "must be >= 0"})
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs = append(errs, domain.FieldError{Field: "maxPrice", Message: "must be >= minPrice"})
	}

	plan.SortBy, plan.SortDesc = parseSort(f.Sort)
	plan.Page, plan.Limit = clampPage(f.Page, f.Limit, p)

	if len(f.Attributes) > 0 {
		if c == nil {
			key := slices.Min(slices.Collect(maps.Keys(f.Attributes)))
			return domain.QueryPlan{}, domain.NewAmbiguousFilter(key, "attribute filters require a category")
		}
		conds, attrErrs, err := translateAttributes(f.Attributes, c)
		if err != nil {
			return domain.QueryPlan{}, err
		}
		errs = append(errs, attrErrs...)
		plan.Attributes = conds
	}

	if len(errs) > 0 {
		return domain.QueryPlan{}, domain.NewValidationErrors(errs)
	}
	return plan, nil
}

func translateAttributes(attrs map[string]string, c *domain.Category) ([]domain.AttrCondition, []domain.FieldError, error) {
	var errs []domain.FieldError
	ranges := make(map[string]*domain.AttrCondition)
	var conds []domain.AttrCondition

	rangeFor := func(field string) *domain.AttrCondition {
		r, ok := ranges[field]
		if !ok {
			r = &domain.AttrCondition{Field: field, Op: domain.AttrOpRange}
			ranges[field] = r
		}
		return r
	}

	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		value := strings.TrimSpace(attrs[key])
		if value == "" {
			continue
		}

		if def, ok := c.Field(key); ok {
			switch def.Type {
			case domain.FieldTypeNumber:
				n, ok := parseDecimal(value)
				if !ok {
					errs = append(errs, domain.FieldError{Field: key, Message: "must be a number", Code: domain.ViolationInvalidValue})
					continue
				}
				r := rangeFor(key)
				r.Min, r.Max = &n, &n
			case domain.FieldTypeDropdown, domain.FieldTypeRadio:
				conds = append(conds, domain.AttrCondition{Field: key, Op: domain.AttrOpEquals, Value: value})
			case domain.FieldTypeText:
				conds = append(conds, domain.AttrCondition{Field: key, Op: domain.AttrOpContains, Value: value})
			default:
				return nil, nil, domain.NewUnsupportedFilter(key, fmt.Sprintf("%s fields cannot be filtered", def.Type))
			}
			continue
		}

		prefix, field, isBound := splitBound(key)
		if !isBound {
			conds = append(conds, domain.AttrCondition{Field: key, Op: domain.AttrOpEquals, Value: value})
			continue
		}
		def, ok := c.Field(field)
		if !ok {
			conds = append(conds, domain.AttrCondition{Field: key, Op: domain.AttrOpEquals, Value: value})
			continue
		}
		if def.Type != domain.FieldTypeNumber {
			return nil, nil, domain.NewUnsupportedFilter(key, fmt.Sprintf("range filter on %s field %q", def.Type, field))
		}
		n, ok := parseDecimal(value)
		if !ok {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be a number", Code: domain.ViolationInvalidValue})
			continue
		}
		r := rangeFor(field)
		if prefix == "min" {
			r.Min = &n
		} else {
			r.Max = &n
		}
	}

	for _, r := range ranges {
		conds = append(conds, *r)
	}
	slices.SortFunc(conds, func(a, b domain.AttrCondition) int {
		return cmp.Or(cmp.Compare(a.Field, b.Field), cmp.Compare(a.Op, b.Op))
	})
	return conds, errs, nil
}

// splitBound recognizes "minYear" and "maxYear" style keys and returns the
// prefix and the field name with its first letter lower-cased.
func splitBound(key string) (prefix, field string, ok bool) {
	for _, p := range []string{"min", "max"} {
		rest, found := strings.CutPrefix(key, p)
		if !found || rest == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !unicode.IsUpper(r) {
			continue
		}
		return p, string(unicode.ToLower(r)) + rest[size:], true
	}
	return "", "", false
}

// parseSort maps "price", "-price" and friends to a column and direction.
// Unknown values fall back to newest first.
func parseSort(s string) (domain.SortField, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defaultSort
	}
	desc := strings.HasPrefix(s, "-")
	if field, ok := sortFields[strings.TrimPrefix(s, "-")]; ok {
		return field, desc
	}
	return domain.SortByCreatedAt, true
}

func clampPage(page, limit int, p Paging) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if limit <= 0 {
		limit = 20
	}
	// Offsets stay within a Postgres int4 so page*limit cannot overflow.
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}
