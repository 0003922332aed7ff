package tokens

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage wraps persistence failures. A register call that carried
	// a position fails outright on storage errors; the position was the
	// point of the write.
	ErrStorage = errors.New("storage_error")
)

// FieldError is a validation failure tied to a named request field. It
// is returned, not panicked: validation outcomes are expected results,
// not exceptional conditions.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsFieldError unwraps a FieldError from err when present.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
