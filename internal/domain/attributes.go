package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// AttrValue is a normalized custom field value. The set of implementations
// is closed: Text, Number and Options.
type AttrValue interface {
	// IsEmpty reports whether the value counts as absent for required fields.
	IsEmpty() bool
	attrValue()
}

// Text is the value of a text, dropdown or radio field.
type Text string

// Number is the value of a number field.
type Number float64

// Options is the value of a checkbox field: selected options in order.
type Options []string

func (Text) attrValue()    {}
func (Number) attrValue()  {}
func (Options) attrValue() {}

func (t Text) IsEmpty() bool    { return t == "" }
func (Number) IsEmpty() bool    { return false }
func (o Options) IsEmpty() bool { return len(o) == 0 }

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("attribute number %v is not finite", f)
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Attributes is a listing's category-specific data keyed by field name.
type Attributes map[string]AttrValue

// Raw converts the map back into plain Go values, the shape accepted by the
// schema validator as input.
func (a Attributes) Raw() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		switch x := v.(type) {
		case Text:
			out[k] = string(x)
		case Number:
			out[k] = float64(x)
		case Options:
			out[k] = slices.Clone([]string(x))
		}
	}
	return out
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// UnmarshalJSON decodes a stored attribute object. Strings become Text,
// numbers become Number and string arrays become Options.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode attributes: %w", err)
	}

	out := make(Attributes, len(raw))
	for k, v := range raw {
		val, err := attrFromJSON(v)
		if err != nil {
			return fmt.Errorf("decode attribute %q: %w", k, err)
		}
		out[k] = val
	}
	*a = out
	return nil
}

func attrFromJSON(v any) (AttrValue, error) {
	switch x := v.(type) {
	case string:
		return Text(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case []any:
		opts := make(Options, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected array element %T", item)
			}
			opts = append(opts, s)
		}
		return opts, nil
	default:
		return nil, fmt.Errorf("unexpected value type %T", v)
	}
}
