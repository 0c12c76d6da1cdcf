package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError maps field names to human-readable messages, mirroring the
// request payload shape. Callers can fix the input and retry.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AccessError means the caller is authenticated but not allowed to perform
// the operation. Reason is safe to show to the caller.
type AccessError struct {
	Reason string
}

func (e *AccessError) Error() string { return e.Reason }

func AccessDenied(reason string) *AccessError {
	return &AccessError{Reason: reason}
}
