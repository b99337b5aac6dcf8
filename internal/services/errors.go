package services

import (
	"errors"
	"strings"

	"mechadex/internal/repositories"
)

var (
	// ErrDuplicateUsername is returned by Register when the username is taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrUnknownUser is returned by Authenticate when no such user exists.
	ErrUnknownUser = errors.New("unknown user")
	// ErrPasswordMismatch is returned by Authenticate for a wrong password.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrNotFound is returned when a mech or attack does not exist.
	ErrNotFound = repositories.ErrNotFound
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every field that failed validation. Nothing is
// written when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Reason returns the failure reason for field, or "" when it passed.
func (e *ValidationError) Reason(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason
		}
	}
	return ""
}

// ByField returns the reasons keyed by field name, for templates.
func (e *ValidationError) ByField() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Reason
	}
	return m
}
