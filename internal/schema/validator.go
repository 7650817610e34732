package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// Violation is one reason a proposed attribute map was rejected.
type Violation struct {
	Code  domain.ViolationCode
	Field string
}

// Message returns a client-facing description of the violation.
func (v Violation) Message() string {
	switch v.Code {
	case domain.ViolationMissingRequired:
		return "is required"
	case domain.ViolationUnknownField:
		return "is not defined for this category"
	case domain.ViolationInvalidValue:
		return "has an invalid value"
	}
	return string(v.Code)
}

func (v Violation) String() string {
	return fmt.Sprintf("%s(%s)", v.Code, v.Field)
}

// Validate checks proposed against the category's field definitions.
//
// Violations are collected, never short-circuited: missing required fields
// first in declared order, then unknown or invalid keys in key order.
// The normalized map is returned only when there are no violations.
// Empty text and empty checkbox values are dropped from the result.
// A nil raw value counts as absent.
func Validate(fields []domain.FieldDefinition, proposed map[string]any) (domain.Attributes, []Violation) {
	defs := make(map[string]domain.FieldDefinition, len(fields))
	for _, f := range fields {
		defs[f.Name] = f
	}

	var keyViolations []Violation
	normalized := make(domain.Attributes, len(proposed))

	for _, key := range slices.Sorted(maps.Keys(proposed)) {
		raw := proposed[key]
		def, ok := defs[key]
		if !ok {
			keyViolations = append(keyViolations, Violation{Code: domain.ViolationUnknownField, Field: key})
			continue
		}
		if raw == nil {
			continue
		}
		val, ok := Normalize(def.Type, def.Options, raw)
		if !ok {
			keyViolations = append(keyViolations, Violation{Code: domain.ViolationInvalidValue, Field: key})
			continue
		}
		if val.IsEmpty() {
			continue
		}
		normalized[key] = val
	}

	var violations []Violation
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if _, ok := normalized[f.Name]; ok {
			continue
		}
		if slices.ContainsFunc(keyViolations, func(v Violation) bool { return v.Field == f.Name }) {
			continue
		}
		violations = append(violations, Violation{Code: domain.ViolationMissingRequired, Field: f.Name})
	}
	violations = append(violations, keyViolations...)

	if len(violations) > 0 {
		return nil, violations
	}
	return normalized, nil
}

// ValidateCategory runs Validate against c's current schema.
func ValidateCategory(c *domain.Category, proposed map[string]any) (domain.Attributes, []Violation) {
	return Validate(c.Fields, proposed)
}

// NewValidationError converts violations into a domain.ValidationError with
// one FieldError per violation, fields prefixed with "customFields.".
func NewValidationError(violations []Violation) *domain.ValidationError {
	errs := make([]domain.FieldError, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, domain.FieldError{
			Field:   "customFields." + v.Field,
			Message: v.Message(),
			Code:    v.Code,
		})
	}
	return domain.NewValidationErrors(errs)
}

// PreviewResult is the outcome of a dry-run validation.
type PreviewResult struct {
	Valid      bool
	Normalized domain.Attributes
	Violations []Violation
}

// Preview validates proposed without any side effect.
func Preview(fields []domain.FieldDefinition, proposed map[string]any) PreviewResult {
	normalized, violations := Validate(fields, proposed)
	return PreviewResult{
		Valid:      len(violations) == 0,
		Normalized: normalized,
		Violations: violations,
	}
}
