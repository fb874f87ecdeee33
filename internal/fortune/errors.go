package fortune

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a value rejected at the engine boundary, before
// any cycle or score computation runs.
type InvalidInputError struct {
	// Field names the offending input, e.g. "date" or "days".
	Field string

	// Value is the rejected input as given.
	Value string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsInvalidInput returns true if err is or wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
