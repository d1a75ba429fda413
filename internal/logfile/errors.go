package logfile

import (
	"errors"
	"fmt"
)

// HeaderError reports a missing or unparseable log header.
type HeaderError struct {
	// Line is the offending first line, empty if the stream was empty.
	Line string
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	if e.Line == "" {
		return "invalid log file version: empty log"
	}
	return fmt.Sprintf("invalid log file version: %q", e.Line)
}

// TooNewError reports a log written by a newer ps2emu-record than this
// build understands. It is raised before any event is parsed.
type TooNewError struct {
	Found int
	Max   int
}

// Error implements the error interface.
func (e *TooNewError) Error() string {
	return fmt.Sprintf("log version is too new (found %d, we only support up to %d)", e.Found, e.Max)
}

// LineError reports a body line that makes the log unreadable: an
// unrecognized line shape, an unknown section name, or a malformed
// event payload. Number is 1-based and counts the header.
type LineError struct {
	Number int
	Line   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Number, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Number, e.Reason, e.Line)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// IsVersionError reports whether err is a header or version-gating
// failure rather than a body problem.
func IsVersionError(err error) bool {
	var he *HeaderError
	var te *TooNewError
	return errors.As(err, &he) || errors.As(err, &te)
}
