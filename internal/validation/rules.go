package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var tags = validator.New()

// IsString requires a JSON string.
func IsString(message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(message)
		}
		return s, nil
	}
}

// Trim strips surrounding whitespace. Non-strings pass through.
func Trim() Rule {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return value, nil
	}
}

// Length bounds a string's length in characters. A max of zero is unbounded.
func Length(min, max int, message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(message)
		}
		n := utf8.RuneCountInString(s)
		if n < min || (max > 0 && n > max) {
			return nil, fail(message)
		}
		return s, nil
	}
}

// MaxBytes bounds a string's encoded size.
func MaxBytes(max int, message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || len(s) > max {
			return nil, fail(message)
		}
		return s, nil
	}
}

// OneOf requires a string from allowed.
func OneOf(message string, allowed ...string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if ok {
			for _, candidate := range allowed {
				if s == candidate {
					return s, nil
				}
			}
		}
		return nil, fail(message)
	}
}

// ResourceID requires a canonical UUID as issued by the store.
func ResourceID(message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || tags.Var(s, "required,uuid") != nil {
			return nil, fail(message)
		}
		return s, nil
	}
}

// Email requires a well-formed address and lower-cases it.
func Email(message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(message)
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if tags.Var(s, "required,email") != nil {
			return nil, fail(message)
		}
		return s, nil
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ISODate parses an ISO 8601 date or timestamp into a UTC time. Values without
// a zone are read as UTC.
func ISODate(message string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(message)
		}
		s = strings.TrimSpace(s)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return nil, fail(message)
	}
}

// NullableISODate is ISODate that maps null and "" to nil, meaning "clear".
func NullableISODate(message string) Rule {
	parse := ISODate(message)
	return func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return parse(value)
	}
}
