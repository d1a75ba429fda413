package logfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/virtdev/ps2emu/internal/event"
)

// Writer emits a version-1 event log. The header is written lazily on
// the first event or section so an aborted recording leaves nothing
// behind.
type Writer struct {
	w       *bufio.Writer
	started bool
	section string
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// start writes the header and the opening main section.
func (lw *Writer) start() error {
	if lw.started {
		return nil
	}
	lw.started = true

	if _, err := fmt.Fprintf(lw.w, "%s%d\n", header, Version); err != nil {
		return err
	}
	return lw.writeSection(SectionMain)
}

func (lw *Writer) writeSection(name string) error {
	lw.section = name
	_, err := fmt.Fprintf(lw.w, "%s%s\n", sectionPrefix, name)
	return err
}

// BeginSection switches the destination section. Writing an event
// before any BeginSection call records into main.
func (lw *Writer) BeginSection(name string) error {
	if name != SectionInit && name != SectionMain {
		return fmt.Errorf("unknown section %q", name)
	}
	if !lw.started {
		lw.started = true
		if _, err := fmt.Fprintf(lw.w, "%s%d\n", header, Version); err != nil {
			return err
		}
	}
	return lw.writeSection(name)
}

// WriteEvent appends one event line to the current section.
func (lw *Writer) WriteEvent(e event.Event) error {
	if err := lw.start(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(lw.w, "%s%s\n", eventPrefix, e.LogLine())
	return err
}

// Flush writes any buffered output to the underlying writer.
func (lw *Writer) Flush() error {
	if err := lw.start(); err != nil {
		return err
	}
	return lw.w.Flush()
}

// WriteLog emits a whole parsed log. Version-0 logs are upgraded to
// the sectioned format with their flat list under main.
func WriteLog(w io.Writer, l *Log) error {
	lw := NewWriter(w)

	if len(l.Init) > 0 {
		if err := lw.BeginSection(SectionInit); err != nil {
			return err
		}
		for _, e := range l.Init {
			if err := lw.WriteEvent(e); err != nil {
				return err
			}
		}
		if err := lw.BeginSection(SectionMain); err != nil {
			return err
		}
	}

	for _, e := range l.Events {
		if err := lw.WriteEvent(e); err != nil {
			return err
		}
	}
	for _, e := range l.Main {
		if err := lw.WriteEvent(e); err != nil {
			return err
		}
	}

	return lw.Flush()
}
