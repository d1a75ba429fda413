package device

import (
	"io"
	"os"
)

// Command is the first byte of a command frame.
type Command byte

// Command set of the ps2emu kernel module, in wire order. SetPortType
// must precede Begin; Begin must precede any interrupt or read.
const (
	CmdSetPortType Command = iota
	CmdBegin
	CmdSendInterrupt
)

// PortType8042 is SERIO_8042 from linux/serio.h, the port type of an
// i8042 controller.
const PortType8042 byte = 0x01

// DefaultPath is the character device the ps2emu kernel module
// exposes.
const DefaultPath = "/dev/ps2emu"

// Channel is the narrow two-operation protocol surface the replay
// engine uses, so it can run against a fake channel without hardware.
type Channel interface {
	// Send writes one 2-byte command frame.
	Send(cmd Command, data byte) error

	// ReceiveByte blocks until the device produces one byte outward.
	ReceiveByte() (byte, error)
}

// IOChannel adapts any byte-oriented handle to Channel. Writes go out
// frame-at-a-time and reads are single bytes; no buffering happens on
// either side.
type IOChannel struct {
	rw   io.ReadWriter
	name string
}

// NewIOChannel wraps rw. name appears in channel errors.
func NewIOChannel(rw io.ReadWriter, name string) *IOChannel {
	return &IOChannel{rw: rw, name: name}
}

// Send implements Channel.
func (c *IOChannel) Send(cmd Command, data byte) error {
	if _, err := c.rw.Write([]byte{byte(cmd), data}); err != nil {
		return &ChannelError{Op: "writing to", Name: c.name, Err: err}
	}
	return nil
}

// ReceiveByte implements Channel.
func (c *IOChannel) ReceiveByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(c.rw, buf[:]); err != nil {
		return 0, &ChannelError{Op: "reading from", Name: c.name, Err: err}
	}
	return buf[0], nil
}

// Dev is an open ps2emu character device.
type Dev struct {
	*IOChannel
	f *os.File
}

// Open opens the ps2emu character device at path. os.File performs no
// user-space buffering, which the protocol requires.
func Open(path string) (*Dev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &ChannelError{Op: "opening", Name: path, Err: err}
	}
	return &Dev{IOChannel: NewIOChannel(f, path), f: f}, nil
}

// Close closes the device.
func (d *Dev) Close() error {
	return d.f.Close()
}

// Start performs device bring-up in the required order: port type
// first, then begin.
func Start(ch Channel) error {
	if err := ch.Send(CmdSetPortType, PortType8042); err != nil {
		return err
	}
	return ch.Send(CmdBegin, PortType8042)
}
