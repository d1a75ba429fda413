package harness

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/virtdev/ps2emu/internal/device"
	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/logfile"
	"github.com/virtdev/ps2emu/internal/replay"
)

// TraceStep is one recorded interaction of a scenario run.
type TraceStep struct {
	// Kind is "send", "receive", "sleep" or "list".
	Kind string `json:"kind"`

	// List names the event list replay entered (Kind "list").
	List string `json:"list,omitempty"`

	// Us is the sleep duration in microseconds (Kind "sleep").
	Us int64 `json:"us,omitempty"`

	// Command names the sent frame's command (Kind "send").
	Command string `json:"command,omitempty"`

	// Data is the frame or received byte in hex (Kind "send"/"receive").
	Data string `json:"data,omitempty"`
}

// Result holds everything a scenario run produced.
type Result struct {
	Scenario string      `json:"scenario"`
	Trace    []TraceStep `json:"trace"`
	Output   []string    `json:"output"`
}

// scriptClock implements replay.Clock; time only moves when slept on,
// and every sleep lands in the trace.
type scriptClock struct {
	now   time.Time
	trace *[]TraceStep
}

func (c *scriptClock) Now() time.Time { return c.now }

func (c *scriptClock) Sleep(d time.Duration) {
	*c.trace = append(*c.trace, TraceStep{Kind: "sleep", Us: int64(d / time.Microsecond)})
	c.now = c.now.Add(d)
}

// scriptChannel implements device.Channel over the scenario's byte
// script, recording every frame.
type scriptChannel struct {
	reads []byte
	trace *[]TraceStep
}

func (ch *scriptChannel) Send(cmd device.Command, data byte) error {
	*ch.trace = append(*ch.trace, TraceStep{
		Kind:    "send",
		Command: commandName(cmd),
		Data:    fmt.Sprintf("%02x", data),
	})
	return nil
}

func (ch *scriptChannel) ReceiveByte() (byte, error) {
	if len(ch.reads) == 0 {
		return 0, &device.ChannelError{
			Op:   "reading from",
			Name: "scripted device",
			Err:  fmt.Errorf("device byte script exhausted"),
		}
	}

	b := ch.reads[0]
	ch.reads = ch.reads[1:]
	*ch.trace = append(*ch.trace, TraceStep{Kind: "receive", Data: fmt.Sprintf("%02x", b)})
	return b, nil
}

func commandName(cmd device.Command) string {
	switch cmd {
	case device.CmdSetPortType:
		return "set-port-type"
	case device.CmdBegin:
		return "begin"
	case device.CmdSendInterrupt:
		return "send-interrupt"
	}
	return fmt.Sprintf("unknown-%d", cmd)
}

// Run executes a scenario and returns its trace. The returned error
// is the run's failure, if any; ExpectError handling is the caller's
// business.
func Run(scenario *Scenario) (*Result, error) {
	result := &Result{Scenario: scenario.Name, Output: []string{}}

	l, err := logfile.Read(strings.NewReader(scenario.Log))
	if err != nil {
		return result, err
	}

	script := make([]byte, len(scenario.DeviceBytes))
	for i, b := range scenario.DeviceBytes {
		script[i] = byte(b)
	}

	ch := &scriptChannel{reads: script, trace: &result.Trace}
	clock := &scriptClock{now: time.Unix(0, 0), trace: &result.Trace}

	var out bytes.Buffer
	en := replay.New(ch, &out, replay.WithClock(clock))

	err = func() error {
		if err := device.Start(ch); err != nil {
			return err
		}

		if l.Version == 0 {
			result.Trace = append(result.Trace, TraceStep{Kind: "list", List: "events"})
			return en.ReplayList(l.Events)
		}

		for _, list := range []struct {
			name   string
			events []event.Event
		}{
			{logfile.SectionInit, l.Init},
			{logfile.SectionMain, l.Main},
		} {
			result.Trace = append(result.Trace, TraceStep{Kind: "list", List: list.name})
			if err := en.ReplayList(list.events); err != nil {
				return err
			}
		}
		return nil
	}()

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if line != "" {
			result.Output = append(result.Output, line)
		}
	}

	return result, err
}
