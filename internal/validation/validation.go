// Package validation checks request input against declarative schemas before
// any business logic or store access runs.
package validation

import (
	"fmt"
	"time"

	"github.com/taskboard/tracker/internal/errors"
)

// Rule inspects a value and returns its normalized form. A non-nil error's
// message is reported to the client verbatim.
type Rule func(value any) (any, error)

// Field describes one input key.
//
// A required field that is absent is still passed through its rules as nil,
// so the first rule decides the message. An Optional field is skipped only
// when absent; an explicit null still runs its rules unless Nullable is set.
type Field struct {
	Name     string
	Optional bool
	Nullable bool
	Rules    []Rule
}

// Schema is an ordered list of fields. Fields are checked in order and the
// first violation wins.
type Schema []Field

// Validate checks input and returns the normalized values.
func (s Schema) Validate(input map[string]any) (Values, error) {
	out := Values{}
	for _, field := range s {
		raw, present := input[field.Name]
		if !present && field.Optional {
			continue
		}
		if present && raw == nil && field.Nullable {
			out[field.Name] = nil
			continue
		}

		value := raw
		for _, rule := range field.Rules {
			next, err := rule(value)
			if err != nil {
				return nil, errors.Validation(err.Error())
			}
			value = next
		}
		if present || value != nil {
			out[field.Name] = value
		}
	}
	return out, nil
}

// Values holds normalized input. A key that is missing was omitted; a key
// mapped to nil was explicitly cleared.
type Values map[string]any

// Has reports whether name was supplied, including as null.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// IsNull reports whether name was supplied as an explicit clear.
func (v Values) IsNull(name string) bool {
	value, ok := v[name]
	return ok && value == nil
}

// String returns the string value of name, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// StringPtr returns nil when name was omitted.
func (v Values) StringPtr(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// Time returns the parsed time for name.
func (v Values) Time(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	return t, ok
}

// TimePtr returns nil unless name holds a time.
func (v Values) TimePtr(name string) *time.Time {
	t, ok := v.Time(name)
	if !ok {
		return nil
	}
	return &t
}

func fail(message string) error {
	return fmt.Errorf("%s", message)
}
