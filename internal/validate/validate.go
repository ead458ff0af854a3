// Package validate decides whether an extracted payload is good enough to
// show. Every schema checks all of its required keys and thresholds; a
// payload that fails any one of them is rejected as a whole.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"svl-backend/internal/extract"
)

// Reason classifies a rejection.
type Reason string

const (
	MissingKey     Reason = "missing_required_key"
	BelowThreshold Reason = "below_minimum_threshold"
	MalformedItem  Reason = "malformed_item"
)

// Rejection is returned when a payload does not satisfy its schema.
type Rejection struct {
	Schema string
	Reason Reason
	Field  string
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s (%s)", r.Schema, r.Reason, r.Field)
	}
	return fmt.Sprintf("%s: %s (%s): %s", r.Schema, r.Reason, r.Field, r.Detail)
}

// Schema validates one payload shape. It returns nil or a *Rejection.
type Schema func(p extract.Payload) error

// Check runs schema against p.
func Check(p extract.Payload, schema Schema) error {
	if p == nil {
		return &Rejection{Schema: "payload", Reason: MissingKey, Field: "*", Detail: "empty payload"}
	}
	return schema(p)
}

type checker struct {
	schema string
	p      extract.Payload
}

func (c checker) reject(reason Reason, field, format string, args ...any) error {
	return &Rejection{Schema: c.schema, Reason: reason, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// require reports the first missing key.
func (c checker) require(keys ...string) error {
	for _, k := range keys {
		if _, ok := c.p[k]; !ok {
			return &Rejection{Schema: c.schema, Reason: MissingKey, Field: k}
		}
	}
	return nil
}

func (c checker) text(key string) (string, error) {
	s, ok := c.p[key].(string)
	if !ok {
		return "", c.reject(MalformedItem, key, "expected string, got %T", c.p[key])
	}
	return s, nil
}

// longerThan requires a string of more than min runes.
func (c checker) longerThan(key string, min int) error {
	s, err := c.text(key)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(s); n <= min {
		return c.reject(BelowThreshold, key, "length %d, need more than %d", n, min)
	}
	return nil
}

func (c checker) list(key string) ([]any, error) {
	l, ok := c.p[key].([]any)
	if !ok {
		return nil, c.reject(MalformedItem, key, "expected list, got %T", c.p[key])
	}
	return l, nil
}

func (c checker) atLeast(key string, min int) ([]any, error) {
	l, err := c.list(key)
	if err != nil {
		return nil, err
	}
	if len(l) < min {
		return nil, c.reject(BelowThreshold, key, "%d items, need at least %d", len(l), min)
	}
	return l, nil
}

func nonEmpty(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// eachObject checks every element of items is an object with each of the
// given keys holding a non-empty string.
func (c checker) eachObject(field string, items []any, keys ...string) error {
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return c.reject(MalformedItem, field, "item %d is %T, not an object", i, item)
		}
		for _, k := range keys {
			if !nonEmpty(obj[k]) {
				return c.reject(MalformedItem, field, "item %d has empty %q", i, k)
			}
		}
	}
	return nil
}

func (c checker) eachString(field string, items []any) error {
	for i, item := range items {
		if !nonEmpty(item) {
			return c.reject(MalformedItem, field, "item %d is not a non-empty string", i)
		}
	}
	return nil
}
