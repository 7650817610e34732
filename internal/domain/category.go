package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is an administrator-defined grouping of listings with its own
// attribute schema.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Icon        string
	ParentID    *uuid.UUID
	Fields      []FieldDefinition
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FieldDefinition is one entry of a category schema. Fields are owned by
// their category and keep their declared order.
type FieldDefinition struct {
	Name        string
	Type        FieldType
	Options     []string
	Required    bool
	Placeholder string
}

// Field returns the definition named name, if the category declares it.
func (c *Category) Field(name string) (FieldDefinition, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

const (
	MaxFieldsPerCategory = 50
	MaxOptionsPerField   = 100
	MaxFieldNameLength   = 64
)

// NormalizeFieldDefinitions trims names and options and clears options on
// types that do not use them. The input slice is not modified.
func NormalizeFieldDefinitions(fields []FieldDefinition) []FieldDefinition {
	out := make([]FieldDefinition, len(fields))
	for i, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		f.Placeholder = strings.TrimSpace(f.Placeholder)
		if f.Type.HasOptions() {
			opts := make([]string, 0, len(f.Options))
			for _, o := range f.Options {
				opts = append(opts, strings.TrimSpace(o))
			}
			f.Options = opts
		} else {
			f.Options = nil
		}
		out[i] = f
	}
	return out
}

// ValidateFieldDefinitions checks a category schema and collects every
// problem: empty or duplicate names, unknown types, and the options rule
// (non-empty and duplicate-free for dropdown, radio and checkbox).
// Field paths are reported as customFields[i].<attr>.
func ValidateFieldDefinitions(fields []FieldDefinition) []FieldError {
	var errs []FieldError

	if len(fields) > MaxFieldsPerCategory {
		errs = append(errs, FieldError{
			Field:   "customFields",
			Message: fmt.Sprintf("max %d fields", MaxFieldsPerCategory),
		})
	}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		path := fmt.Sprintf("customFields[%d]", i)

		switch {
		case f.Name == "":
			errs = append(errs, FieldError{Field: path + ".fieldName", Message: "required"})
		case len(f.Name) > MaxFieldNameLength:
			errs = append(errs, FieldError{Field: path + ".fieldName", Message: fmt.Sprintf("max %d characters", MaxFieldNameLength)})
		case seen[f.Name]:
			errs = append(errs, FieldError{Field: path + ".fieldName", Message: fmt.Sprintf("duplicate field name %q", f.Name)})
		}
		seen[f.Name] = true

		if !f.Type.IsValid() {
			errs = append(errs, FieldError{Field: path + ".fieldType", Message: fmt.Sprintf("unknown field type %q", f.Type)})
			continue
		}

		if !f.Type.HasOptions() {
			continue
		}
		if len(f.Options) == 0 {
			errs = append(errs, FieldError{Field: path + ".options", Message: "required for " + f.Type.String()})
			continue
		}
		if len(f.Options) > MaxOptionsPerField {
			errs = append(errs, FieldError{Field: path + ".options", Message: fmt.Sprintf("max %d options", MaxOptionsPerField)})
		}
		if slices.Contains(f.Options, "") {
			errs = append(errs, FieldError{Field: path + ".options", Message: "options must not be empty"})
		}
		if hasDuplicates(f.Options) {
			errs = append(errs, FieldError{Field: path + ".options", Message: "options must be unique"})
		}
	}

	return errs
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// CategoryUpdateParams holds a partial category update. nil means unchanged.
type CategoryUpdateParams struct {
	Name        *string
	Slug        *string
	Description *string
	Icon        *string
	ParentID    *uuid.UUID
	ClearParent bool
	Fields      *[]FieldDefinition
	IsActive    *bool
}

// ParentScope selects which level of the category tree a listing covers.
type ParentScope int

const (
	// ParentScopeTop selects categories without a parent.
	ParentScopeTop ParentScope = iota
	// ParentScopeChildren selects direct children of CategoryFilter.ParentID.
	ParentScopeChildren
	// ParentScopeAll ignores the parent link.
	ParentScopeAll
)

// CategoryFilter contains filtering parameters for category listings.
// Results are always sorted by name.
type CategoryFilter struct {
	Scope      ParentScope
	ParentID   uuid.UUID
	ActiveOnly bool
}
