package models

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to the messages describing why it was rejected.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Fields returns the rejected field names in sorted order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError is returned when user supplied data is rejected. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError creates a ValidationError holding a single field message.
func NewValidationError(field, message string) *ValidationError {
	fe := FieldErrors{}
	fe.Add(field, message)
	return &ValidationError{Fields: fe}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConfigurationError signals a programmer error, such as building a component
// without one of its required collaborators.
type ConfigurationError struct {
	Component string
	Missing   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Component, e.Missing)
}
