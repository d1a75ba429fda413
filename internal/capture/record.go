package capture

import (
	"errors"
	"io"

	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/logfile"
)

// Options controls one recording pass.
type Options struct {
	// Filter selects which ports are recorded.
	Filter Filter

	// ResumeAt, when non-zero, makes the recorder skip kernel-log
	// content until it sees this tool's start marker carrying the same
	// value. Used when this process enabled debugging itself and must
	// separate its recording from earlier ones in the same log.
	ResumeAt int64

	// OnEvent, when non-nil, is called for each event that passed the
	// filter, after it was written.
	OnEvent func(event.Event)
}

// Record drives the scanner across the whole kernel log in r and
// writes qualifying events to w as a versioned log. It returns nil on
// clean end of stream, a NoEventsError if the stream ended before the
// requested resume marker, and the underlying error on malformed
// driver lines or I/O failure.
func Record(r io.Reader, w io.Writer, opts Options) error {
	sc := NewScanner(r)

	if opts.ResumeAt != 0 {
		if err := seekStartMarker(sc, opts.ResumeAt); err != nil {
			return err
		}
	}

	lw := logfile.NewWriter(w)

	for {
		msg, err := sc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if msg.Source != SourceDriver || !opts.Filter.Keep(msg.Event) {
			continue
		}

		if err := lw.WriteEvent(msg.Event); err != nil {
			return err
		}
		if opts.OnEvent != nil {
			opts.OnEvent(msg.Event)
		}
	}

	return lw.Flush()
}

// seekStartMarker consumes messages until the marker with the wanted
// start time appears. Driver events seen before it belong to earlier
// recordings and are dropped.
func seekStartMarker(sc *Scanner, want int64) error {
	for {
		msg, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return &NoEventsError{StartTime: want}
		}
		if err != nil {
			return err
		}

		if msg.Source == SourceMarker && msg.StartTime == want {
			return nil
		}
	}
}
