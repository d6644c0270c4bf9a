package nutrition

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every validation failure in the calculation layer.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a single rejected field.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}
