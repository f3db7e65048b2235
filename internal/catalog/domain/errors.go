package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// ValidationError is a field-level form error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error of one request. A request with
// any validation error is rejected as a whole.
type ValidationErrors []*ValidationError

// Add appends a field error
func (v *ValidationErrors) Add(field, format string, args ...interface{}) {
	*v = append(*v, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Append merges an error returned by a parser; other errors are ignored
func (v *ValidationErrors) Append(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		*v = append(*v, ve)
	}
}

// Err returns nil when empty so callers can write `return errs.Err()`
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	sort.Strings(msgs)
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields maps field names to messages; the first message per field wins
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := fields[e.Field]; !ok {
			fields[e.Field] = e.Message
		}
	}
	return fields
}

// AsValidation extracts field errors from err, if it carries any
func AsValidation(err error) (ValidationErrors, bool) {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ValidationErrors{ve}, true
	}
	return nil, false
}

// ParseOptionList parses a comma-separated form value such as
// "small, medium, large" into an ordered list. Blank input yields an empty
// list; empty segments and duplicates are rejected.
func ParseOptionList(field, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	parts := strings.Split(raw, ",")
	options := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for i, part := range parts {
		option := strings.TrimSpace(part)
		if option == "" {
			return nil, &ValidationError{Field: field, Message: fmt.Sprintf("entry %d is empty", i+1)}
		}
		key := strings.ToLower(option)
		if seen[key] {
			return nil, &ValidationError{Field: field, Message: fmt.Sprintf("%q is listed twice", option)}
		}
		seen[key] = true
		options = append(options, option)
	}
	return options, nil
}
