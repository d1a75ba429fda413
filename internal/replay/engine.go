package replay

import (
	"fmt"
	"io"
	"time"

	"github.com/virtdev/ps2emu/internal/device"
	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/logfile"
)

// Engine replays event lists over a device channel. It is strictly
// single-threaded: lists replay sequentially and the channel is never
// shared.
type Engine struct {
	ch    device.Channel
	clock Clock
	out   io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the time source, for tests.
func WithClock(c Clock) Option {
	return func(en *Engine) { en.clock = c }
}

// New creates an Engine writing progress and warnings to out.
func New(ch device.Channel, out io.Writer, opts ...Option) *Engine {
	en := &Engine{ch: ch, clock: SystemClock(), out: out}
	for _, opt := range opts {
		opt(en)
	}
	return en
}

// ReplayLog replays a parsed log: the flat list for version-0 logs,
// otherwise the init list followed by the main list.
func (en *Engine) ReplayLog(l *logfile.Log) error {
	if l.Version == 0 {
		return en.ReplayList(l.Events)
	}

	fmt.Fprintln(en.out, "Replaying initialization sequence...")
	if err := en.ReplayList(l.Init); err != nil {
		return err
	}

	fmt.Fprintln(en.out, "Replaying event sequence...")
	return en.ReplayList(l.Main)
}

// ReplayList replays one ordered list against the channel. The timing
// origin is captured fresh at entry. A channel error aborts the rest
// of the list; exhausting the list is success.
func (en *Engine) ReplayList(events []event.Event) error {
	origin := en.clock.Now()

	for _, e := range events {
		var err error
		if e.Type == event.TypeInterrupt {
			err = en.sendInterrupt(origin, e)
		} else {
			err = en.receive(e)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// sendInterrupt waits out the recorded inter-event delay, then sends
// the interrupt frame. If replay is already behind schedule it sends
// immediately; there is no catch-up skipping and never a negative
// sleep.
func (en *Engine) sendInterrupt(origin time.Time, e event.Event) error {
	if !e.HasData {
		// The wire protocol has no encoding for a data-less interrupt,
		// so the frame is skipped rather than synthesizing a byte the
		// hardware never produced.
		fmt.Fprintf(en.out, "Skipping interrupt without data at %d\n", e.Time)
		return nil
	}

	target := time.Duration(e.Time) * time.Microsecond
	if elapsed := en.clock.Now().Sub(origin); elapsed < target {
		en.clock.Sleep(target - elapsed)
	}

	return en.ch.Send(device.CmdSendInterrupt, e.Data)
}

// receive blocks for the one byte the emulated driver stack must
// produce for this event and compares it with the recording. A
// mismatch is reported but never fatal.
func (en *Engine) receive(e event.Event) error {
	data, err := en.ch.ReceiveByte()
	if err != nil {
		return err
	}

	if data == e.Data {
		fmt.Fprintf(en.out, "Received expected data %02x\n", data)
	} else {
		fmt.Fprintf(en.out, "Expected %02x, received %02x\n", e.Data, data)
	}

	return nil
}
