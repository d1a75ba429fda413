package logfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/virtdev/ps2emu/internal/event"
)

// Version is the newest log format this build reads and writes.
const Version = 1

const header = "# ps2emu-record V"

// Section names as they appear after the "S: " marker prefix.
const (
	SectionInit = "init"
	SectionMain = "main"
)

// Line prefixes used by version >= 1 bodies.
const (
	eventPrefix   = "E: "
	sectionPrefix = "S: "
)

// Log is one fully parsed event log. Version 0 logs fill Events;
// version >= 1 logs fill Init and Main. Lists hold events in exact
// source order and are never mutated after Read returns.
type Log struct {
	Version int
	Events  []event.Event
	Init    []event.Event
	Main    []event.Event
}

// Read parses a whole event log from r.
//
// The header is negotiated first: a missing or unparseable header is a
// HeaderError, and a version newer than Version is a TooNewError,
// raised before any body line is examined. Body errors are LineErrors; a
// malformed log is never partially returned.
func Read(r io.Reader) (*Log, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	version, err := readVersion(scanner)
	if err != nil {
		return nil, err
	}
	if version > Version {
		return nil, &TooNewError{Found: version, Max: Version}
	}

	l := &Log{Version: version}
	if version < 1 {
		err = readFlat(scanner, l)
	} else {
		err = readSectioned(scanner, l)
	}
	if err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	return l, nil
}

// readVersion consumes the header line and returns the log version.
func readVersion(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("reading log header: %w", err)
		}
		return 0, &HeaderError{}
	}

	line := strings.TrimRight(scanner.Text(), " \t\r")
	rest, ok := strings.CutPrefix(line, header)
	if !ok {
		return 0, &HeaderError{Line: line}
	}

	version, err := strconv.Atoi(rest)
	if err != nil || version < 0 {
		return 0, &HeaderError{Line: line}
	}

	return version, nil
}

// readFlat handles version-0 bodies: every line is one event payload.
// Payloads matching no event shape are skipped as noise; malformed
// payloads abort the read.
func readFlat(scanner *bufio.Scanner, l *Log) error {
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		e, ok, err := event.ParsePayload(line)
		if err != nil {
			return &LineError{Number: lineNum, Line: line, Reason: "invalid event", Err: err}
		}
		if !ok {
			continue
		}

		l.Events = append(l.Events, e)
	}
	return nil
}

// readSectioned handles version >= 1 bodies. Section markers switch
// the destination list; events seen before any marker go to Main so a
// markerless log still replays. Unknown sections and unrecognized
// lines are fatal.
func readSectioned(scanner *bufio.Scanner, l *Log) error {
	dest := &l.Main

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), " \t\r")

		switch {
		case strings.HasPrefix(line, eventPrefix):
			payload := strings.TrimPrefix(line, eventPrefix)

			e, ok, err := event.ParsePayload(payload)
			if err != nil {
				return &LineError{Number: lineNum, Line: line, Reason: "invalid event", Err: err}
			}
			if !ok {
				continue
			}

			*dest = append(*dest, e)

		case strings.HasPrefix(line, sectionPrefix):
			switch strings.TrimPrefix(line, sectionPrefix) {
			case SectionInit:
				dest = &l.Init
			case SectionMain:
				dest = &l.Main
			default:
				return &LineError{Number: lineNum, Line: line, Reason: "unknown section"}
			}

		default:
			return &LineError{Number: lineNum, Line: line, Reason: "unrecognized line"}
		}
	}
	return nil
}
