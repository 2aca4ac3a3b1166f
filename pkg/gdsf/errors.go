package gdsf

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("gdsf: schema validation failed")

// ValidationError reports a [schema] section that broke one of the schema
// rules. Line is the 1-indexed line that closed the section.
type ValidationError struct {
	SchemaID string
	Line     int
	Reason   string
}

func (e *ValidationError) Error() string {
	id := e.SchemaID
	if id == "" {
		id = "?"
	}
	return fmt.Sprintf("gdsf: schema '%s' on line %d: %s", id, e.Line, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IOError wraps a failure to open or read a GDSF source.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("gdsf: read failed: %v", e.Err)
	}
	return fmt.Sprintf("gdsf: failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodeError reports a section or value that would not parse back to the
// same content.
type EncodeError struct {
	Section string
	Key     string
	Reason  string
}

func (e *EncodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("gdsf: cannot encode section [%s]: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("gdsf: cannot encode [%s] %s: %s", e.Section, e.Key, e.Reason)
}
