// Package extract pulls a JSON value out of model output that may be wrapped
// in code fences or surrounded by prose.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoObject means no outermost brace (or bracket) pair was found.
	ErrNoObject = errors.New("no JSON value found in response")
	// ErrMalformed means a candidate was found but did not parse.
	ErrMalformed = errors.New("malformed JSON in response")
)

// Payload is an untyped object produced by Object.
type Payload map[string]any

const fence = "```"

// candidate picks the text to search for the outermost value. A fence
// labelled json wins, then the first fenced segment holding both delimiters,
// then the raw text.
func candidate(raw string, open, close byte) string {
	if i := strings.Index(raw, fence+"json"); i >= 0 {
		rest := raw[i+len(fence)+len("json"):]
		if end := strings.Index(rest, fence); end >= 0 {
			return rest[:end]
		}
		return rest
	}

	if strings.Contains(raw, fence) {
		parts := strings.Split(raw, fence)
		for i := 1; i < len(parts); i += 2 {
			seg := parts[i]
			if strings.IndexByte(seg, open) >= 0 && strings.IndexByte(seg, close) >= 0 {
				return seg
			}
		}
	}
	return raw
}

func outermost(s string, open, close byte) (string, error) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end < 0 || end < start {
		return "", ErrNoObject
	}
	return s[start : end+1], nil
}

// Object extracts a JSON object from raw. Parse failures are terminal; no
// repair of truncated output is attempted.
func Object(raw string) (Payload, error) {
	slice, err := outermost(candidate(raw, '{', '}'), '{', '}')
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(slice), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Payload(out), nil
}

// Array extracts a JSON array from raw. Single-quoted string literals are
// accepted, since models asked for a list often answer in that style.
func Array(raw string) ([]any, error) {
	slice, err := outermost(candidate(raw, '[', ']'), '[', ']')
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal([]byte(slice), &out); err == nil {
		return out, nil
	}
	if err := json.Unmarshal([]byte(requote(slice)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// requote rewrites single-quoted string literals as double-quoted ones,
// escaping any double quotes they contain.
func requote(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSingle, inDouble, escaped := false, false, false

	for _, r := range s {
		switch {
		case escaped:
			if inSingle && r == '\'' {
				b.WriteRune('\'')
			} else {
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			escaped = false
			continue
		case r == '\\':
			escaped = true
			continue
		}

		switch {
		case inSingle:
			switch r {
			case '\'':
				inSingle = false
				b.WriteRune('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
		case inDouble:
			if r == '"' {
				inDouble = false
			}
			b.WriteRune(r)
		case r == '\'':
			inSingle = true
			b.WriteRune('"')
		case r == '"':
			inDouble = true
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode converts a payload into the typed schema v points to.
func Decode(p Payload, v any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Into extracts an object from raw and decodes it into v.
func Into(raw string, v any) (Payload, error) {
	p, err := Object(raw)
	if err != nil {
		return nil, err
	}
	return p, Decode(p, v)
}
