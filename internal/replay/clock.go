package replay

import "time"

// Clock abstracts the monotonic time source and sleeping so the
// engine can be tested without real delays.
type Clock interface {
	// Now returns a monotonic reading. Only differences between
	// readings are meaningful.
	Now() time.Time

	// Sleep pauses the replaying thread for d.
	Sleep(d time.Duration)
}

// systemClock is the real clock. time.Time carries Go's monotonic
// reading, so differences are immune to wall-clock changes.
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real monotonic clock.
func SystemClock() Clock {
	return systemClock{}
}
