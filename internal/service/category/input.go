package category

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000
	maxIconLength        = 200
)

// CreateInput holds the parameters for creating a category.
type CreateInput struct {
	Name        string
	Description string
	Icon        string
	ParentID    *uuid.UUID
	Fields      []domain.FieldDefinition
}

// Validate checks all fields and collects all errors.
// Fields must already be normalized.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validateText(i.Description, i.Icon)...)
	errs = append(errs, domain.ValidateFieldDefinitions(i.Fields)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds a partial category update. nil means unchanged.
type UpdateInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Icon        *string
	ParentID    *uuid.UUID
	ClearParent bool
	Fields      *[]domain.FieldDefinition
	IsActive    *bool
}

func (i UpdateInput) isEmpty() bool {
	return i.Name == nil && i.Description == nil && i.Icon == nil &&
		i.ParentID == nil && !i.ClearParent && i.Fields == nil && i.IsActive == nil
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.isEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	var description, icon string
	if i.Description != nil {
		description = *i.Description
	}
	if i.Icon != nil {
		icon = *i.Icon
	}
	errs = append(errs, validateText(description, icon)...)
	if i.ParentID != nil && *i.ParentID == i.ID {
		errs = append(errs, domain.FieldError{Field: "parentCategory", Message: "category cannot be its own parent"})
	}
	if i.Fields != nil {
		errs = append(errs, domain.ValidateFieldDefinitions(*i.Fields)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PreviewInput is a dry-run validation request. When Fields is set the
// draft schema is used instead of the stored one.
type PreviewInput struct {
	CategoryID   uuid.UUID
	Fields       *[]domain.FieldDefinition
	CustomFields map[string]any
}

func validateName(name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []domain.FieldError{{Field: "name", Message: "required"}}
	case len(name) > maxNameLength:
		return []domain.FieldError{{Field: "name", Message: "max 100 characters"}}
	}
	return nil
}

func validateText(description, icon string) []domain.FieldError {
	var errs []domain.FieldError
	if len(strings.TrimSpace(description)) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}
	if len(strings.TrimSpace(icon)) > maxIconLength {
		errs = append(errs, domain.FieldError{Field: "icon", Message: "max 200 characters"})
	}
	return errs
}
