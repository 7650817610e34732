package schema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

const draft202012 = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema renders a category's field definitions as a JSON Schema object
// describing a valid customFields map. Clients use it to build forms.
func JSONSchema(c *domain.Category) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Schema:      draft202012,
		Title:       c.Name,
		Description: c.Description,
		Type:        "object",
		Properties:  make(map[string]*jsonschema.Schema, len(c.Fields)),
		// marshals as false: keys outside the schema are rejected
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}

	for _, f := range c.Fields {
		s.Properties[f.Name] = fieldSchema(f)
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

func fieldSchema(f domain.FieldDefinition) *jsonschema.Schema {
	p := &jsonschema.Schema{Title: f.Name, Description: f.Placeholder}

	switch f.Type {
	case domain.FieldTypeNumber:
		p.Type = "number"
	case domain.FieldTypeDropdown, domain.FieldTypeRadio:
		p.Type = "string"
		p.Enum = enum(f.Options)
	case domain.FieldTypeCheckbox:
		p.Type = "array"
		p.Items = &jsonschema.Schema{Type: "string", Enum: enum(f.Options)}
		p.UniqueItems = true
	default:
		p.Type = "string"
		if f.Required {
			minLen := 1
			p.MinLength = &minLen
		}
	}
	return p
}

func enum(options []string) []any {
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = o
	}
	return out
}
