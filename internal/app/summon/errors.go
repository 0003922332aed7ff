package summon

import (
	"errors"
	"fmt"
	"strings"

	"summonlink/internal/app/tokens"
)

// ErrDispatch reports that a command never reached the game server
// console. Broadcast endpoints have no durable side effect, so this
// fails the whole request.
var ErrDispatch = errors.New("dispatch_error")

// ValidationError aggregates every field violation found in a sync
// request. All violations are collected before anything is written, so
// a device gets the complete fix list in one round trip.
type ValidationError struct {
	Fields []tokens.FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}
