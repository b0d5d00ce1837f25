package catalog

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no product carries the requested id.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidID is returned when an id is not a 24 character hex ObjectID.
	ErrInvalidID = errors.New("invalid product id format")
)

// FieldError describes one rejected field of a product payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field problem found in a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "product validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "product validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single field ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
