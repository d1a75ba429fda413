package event

import (
	"errors"
	"fmt"
)

// FormatError reports a payload that matched an event shape but carried
// fields that cannot be parsed. It always aborts the surrounding read:
// a malformed port or IRQ is never defaulted.
type FormatError struct {
	// Payload is the offending event payload.
	Payload string

	// Reason describes what failed to parse.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed event %q: %s: %v", e.Payload, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed event %q: %s", e.Payload, e.Reason)
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
