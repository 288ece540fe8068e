package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Product is a schemaless catalog record. The catalog source defines its own
// shape; the service only recognizes a handful of well-known keys and passes
// everything else through untouched.
type Product map[string]any

// StringField returns the value under key as a string. It returns ok=false
// when the key is absent, null, or not a string.
func (p Product) StringField(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NumberField returns the value under key as a float64, treating booleans as
// 0/1. It returns ok=false when the key is absent, null, or not numeric.
func (p Product) NumberField(key string) (float64, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Tags returns the product's tags list, stringifying non-string elements.
func (p Product) Tags() []string {
	v, ok := p["tags"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(list))
	for _, t := range list {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
			continue
		}
		tags = append(tags, fmt.Sprint(t))
	}
	return tags
}

// MatchesID reports whether the product's id field matches the given path
// segment. String ids compare by equality; numeric ids compare against their
// canonical decimal formatting so catalogs with integer ids still resolve.
func (p Product) MatchesID(segment string) bool {
	v, ok := p["id"]
	if !ok || v == nil {
		return false
	}
	switch id := v.(type) {
	case string:
		return id == segment
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64) == segment
	default:
		return fmt.Sprint(id) == segment
	}
}

// Project returns a copy of the product reduced to the named keys. Unknown
// names are ignored; value types are preserved.
func (p Product) Project(fields []string) Product {
	out := make(Product, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if v, ok := p[f]; ok {
			out[f] = v
		}
	}
	return out
}
