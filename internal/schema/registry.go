// Package schema holds the category schema engine: the field type registry,
// the attribute map validator, the listing filter translator and the JSON
// Schema export of category fields. Everything here is pure; persistence
// lives in the services and adapters that call it.
package schema

import (
	"encoding/json"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// normalizer turns a raw client value into a normalized AttrValue for one
// field type. ok is false when the value has the wrong shape.
type normalizer func(options []string, raw any) (value domain.AttrValue, ok bool)

var registry = map[domain.FieldType]normalizer{
	domain.FieldTypeText:     normalizeText,
	domain.FieldTypeNumber:   normalizeNumber,
	domain.FieldTypeDropdown: normalizeChoice,
	domain.FieldTypeRadio:    normalizeChoice,
	domain.FieldTypeCheckbox: normalizeMulti,
}

// Normalize validates raw against a field type and its options and returns
// the normalized value:
//   - text: a string, trimmed; "" counts as absent for required fields
//   - number: a finite number or numeric string
//   - dropdown, radio: exactly one of options (case-sensitive)
//   - checkbox: a list of options, duplicates removed, order kept
//
// Already normalized values are accepted, so Normalize is idempotent.
func Normalize(ft domain.FieldType, options []string, raw any) (domain.AttrValue, bool) {
	n, ok := registry[ft]
	if !ok {
		return nil, false
	}
	return n(options, raw)
}

func normalizeText(_ []string, raw any) (domain.AttrValue, bool) {
	switch v := raw.(type) {
	case string:
		return domain.Text(strings.TrimSpace(v)), true
	case domain.Text:
		return domain.Text(strings.TrimSpace(string(v))), true
	}
	return nil, false
}

// maxExactInt is the largest magnitude at which every integer is a float64.
const maxExactInt = 1 << 53

func normalizeNumber(_ []string, raw any) (domain.AttrValue, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		if i := int64(v); i > maxExactInt || i < -maxExactInt {
			return nil, false
		}
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		if v > maxExactInt || v < -maxExactInt {
			return nil, false
		}
		f = float64(v)
	case domain.Number:
		f = float64(v)
	case json.Number:
		parsed, ok := parseDecimal(string(v))
		if !ok {
			return nil, false
		}
		f = parsed
	case string:
		parsed, ok := parseDecimal(v)
		if !ok {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return domain.Number(f), true
}

// parseDecimal accepts plain decimal notation only: no hex, no "Inf", no
// underscores. Values whose digits a float64 cannot carry (integers beyond
// 2^53, over-long fractions) are rejected rather than rounded.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789.-+eE", r) {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, sameDecimal(s, f)
}

// sameDecimal reports whether the shortest decimal form of f denotes the
// same number as s.
func sameDecimal(s string, f float64) bool {
	want, ok := new(big.Rat).SetString(s)
	if !ok {
		return false
	}
	got, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return false
	}
	return want.Cmp(got) == 0
}

func normalizeChoice(options []string, raw any) (domain.AttrValue, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case domain.Text:
		s = string(v)
	default:
		return nil, false
	}
	if !slices.Contains(options, s) {
		return nil, false
	}
	return domain.Text(s), true
}

func normalizeMulti(options []string, raw any) (domain.AttrValue, bool) {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case domain.Options:
		items = v
	case []any:
		items = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			items = append(items, s)
		}
	default:
		return nil, false
	}

	out := make(domain.Options, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		if !slices.Contains(options, s) {
			return nil, false
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, true
}
