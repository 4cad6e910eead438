package todo

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum title length, in characters, after trimming.
const MaxTitleLength = 200

// Validation messages, keyed by field in ValidationError.Fields.
const (
	MsgTitleRequired = "Title is required"
	MsgTitleTooLong  = "Title must be 200 characters or less"
	MsgPriority      = "Priority must be 1, 2, or 3"
	MsgDueAtRequired = "Due date is required"
)

// Field names used in ValidationError.Fields. They match the JSON keys of the wire format.
const (
	FieldTitle    = "title"
	FieldPriority = "priority"
	FieldDueAt    = "dueAt"
)

// ValidationError describes which input fields violated which rules.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message against a field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error joins all messages in field order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var msgs []string
	for _, field := range fields {
		msgs = append(msgs, e.Fields[field]...)
	}
	if len(msgs) == 0 {
		return "validation failed"
	}
	return strings.Join(msgs, "; ")
}

// NormalizeTitle trims the title and checks the length rules.
// It returns the trimmed title and the failure message, if any.
func NormalizeTitle(title string) (string, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", MsgTitleRequired
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return "", MsgTitleTooLong
	}
	return trimmed, ""
}

// ValidateFields checks a title and priority together.
// The returned title is trimmed; the error is nil or a *ValidationError.
func ValidateFields(title string, priority Priority) (string, error) {
	verr := NewValidationError()

	trimmed, msg := NormalizeTitle(title)
	if msg != "" {
		verr.Add(FieldTitle, msg)
	}
	if !priority.IsValid() {
		verr.Add(FieldPriority, MsgPriority)
	}

	if verr.HasErrors() {
		return "", verr
	}
	return trimmed, nil
}
