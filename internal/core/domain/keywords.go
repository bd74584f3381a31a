package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Keywords maps a keyword category to its ordered values. Scalar inputs are
// normalized to one-element lists at parse time, so downstream code never
// branches on shape. A category with an empty value list is distinct from an
// absent category: it stays in the map and contributes zero tokens.
type Keywords map[string][]string

// ParseKeywords normalizes a raw category → (scalar | sequence) mapping.
func ParseKeywords(raw any) (Keywords, error) {
	if raw == nil {
		return Keywords{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invariantf("keywords must be a mapping")
	}
	kw := make(Keywords, len(m))
	for category, value := range m {
		values, err := scalarOrList(value)
		if err != nil {
			return nil, invariantf("keyword `%s`: %v", category, err)
		}
		kw[category] = values
	}
	return kw, nil
}

// Flatten produces one "<category>=<value>" token per scalar value.
// Categories are visited in sorted order and value order is preserved, so
// the result is reproducible for identical input.
func (k Keywords) Flatten() []string {
	categories := make([]string, 0, len(k))
	for category := range k {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	tokens := make([]string, 0, len(k))
	for _, category := range categories {
		for _, value := range k[category] {
			tokens = append(tokens, category+"="+value)
		}
	}
	return tokens
}

// Filters maps a filter category to attribute → acceptable (or rejected)
// values, e.g. {"device": {"type": ["desktop"]}}.
type Filters map[string]map[string][]string

// ParseFilters normalizes a raw category → attribute → (scalar | sequence)
// mapping. A nil input yields an empty filter set.
func ParseFilters(raw any) (Filters, error) {
	if raw == nil {
		return Filters{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invariantf("filters must be a mapping")
	}
	f := make(Filters, len(m))
	for category, rawAttrs := range m {
		attrs, ok := rawAttrs.(map[string]any)
		if !ok {
			return nil, invariantf("filter `%s` must be a mapping of attributes", category)
		}
		f[category] = make(map[string][]string, len(attrs))
		for attr, value := range attrs {
			values, err := scalarOrList(value)
			if err != nil {
				return nil, invariantf("filter `%s:%s`: %v", category, attr, err)
			}
			f[category][attr] = values
		}
	}
	return f, nil
}

// Fields projects the filter tree onto flat index field paths rooted at
// prefix, e.g. Fields("filters:require") yields
// "filters:require:device:type" → ["desktop"].
func (f Filters) Fields(prefix string) map[string][]string {
	out := make(map[string][]string, len(f))
	for category, attrs := range f {
		for attr, values := range attrs {
			out[FieldPath(prefix, category, attr)] = values
		}
	}
	return out
}

// FieldPath joins index field path segments with the ":" separator used by
// the search boundary.
func FieldPath(parts ...string) string {
	return strings.Join(parts, ":")
}

// scalarOrList coerces a raw value into a list of strings. A scalar becomes
// a one-element list; a sequence keeps its order.
func scalarOrList(value any) ([]string, error) {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	default:
		s, err := scalarString(value)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		// JSON numbers decode as float64; keep integral values terse.
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("value %v is not a scalar", value)
	}
}
