package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries messages keyed by the offending payload field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) ValidationError {
	return ValidationError{Fields: map[string]string{field: msg}}
}

// With returns a copy of ve with one more field message.
func (ve ValidationError) With(field, msg string) ValidationError {
	fields := make(map[string]string, len(ve.Fields)+1)
	for k, v := range ve.Fields {
		fields[k] = v
	}

	fields[field] = msg

	return ValidationError{Fields: fields}
}

func (ve ValidationError) Error() string {
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+ve.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
