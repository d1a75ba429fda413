package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/virtdev/ps2emu/internal/event"
)

// Message is one recognized item from the kernel log: either a driver
// event or a start-recording marker.
type Message struct {
	Source Source

	// Event is valid when Source is SourceDriver.
	Event event.Event

	// StartTime is valid when Source is SourceMarker.
	StartTime int64
}

// Scanner streams recognized messages out of a kernel log. Unrelated
// lines and unparseable driver chatter are consumed silently.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner creates a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{s: s}
}

// Next returns the next recognized message. It returns io.EOF at the
// end of the stream and an event.FormatError when a driver line
// matches an event shape but is malformed.
func (sc *Scanner) Next() (Message, error) {
	for sc.s.Scan() {
		source, payload, ok := classify(sc.s.Text())
		if !ok {
			continue
		}

		switch source {
		case SourceDriver:
			e, ok, err := event.ParsePayload(payload)
			if err != nil {
				return Message{}, err
			}
			if !ok {
				continue
			}
			return Message{Source: SourceDriver, Event: e}, nil

		case SourceMarker:
			if start, ok := parseStartMarker(payload); ok {
				return Message{Source: SourceMarker, StartTime: start}, nil
			}
		}
	}

	if err := sc.s.Err(); err != nil {
		return Message{}, fmt.Errorf("reading kernel log: %w", err)
	}
	return Message{}, io.EOF
}

// parseStartMarker recognizes "Start recording <time>", the marker the
// tool writes to the kernel log so a fresh recording can be located in
// a continuously running log.
func parseStartMarker(payload string) (int64, bool) {
	rest, ok := strings.CutPrefix(payload, "Start recording ")
	if !ok {
		return 0, false
	}

	start, err := strconv.ParseInt(strings.TrimRight(rest, " \t\r\n"), 10, 64)
	if err != nil {
		return 0, false
	}

	return start, true
}
