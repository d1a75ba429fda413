package device

import (
	"errors"
	"fmt"
)

// ChannelError reports an I/O failure on the device channel. It is
// fatal to the replay of the current list; channel failures are never
// transient and are never retried.
type ChannelError struct {
	Op   string // "opening", "reading from" or "writing to"
	Name string
	Err  error
}

// Error implements the error interface.
func (e *ChannelError) Error() string {
	return fmt.Sprintf("while %s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *ChannelError) Unwrap() error {
	return e.Err
}

// IsChannelError reports whether err is (or wraps) a ChannelError.
func IsChannelError(err error) bool {
	var ce *ChannelError
	return errors.As(err, &ce)
}
