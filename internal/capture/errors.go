package capture

import "errors"

// NoEventsError reports that the kernel log ended before the requested
// recording start marker was found, so nothing qualified for capture.
type NoEventsError struct {
	// StartTime is the marker value the search was waiting for.
	StartTime int64
}

// Error implements the error interface.
func (e *NoEventsError) Error() string {
	return "reached EOF of kernel log and got no events"
}

// IsNoEvents reports whether err is (or wraps) a NoEventsError.
func IsNoEvents(err error) bool {
	var ne *NoEventsError
	return errors.As(err, &ne)
}
