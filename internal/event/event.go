package event

import "fmt"

// Type identifies the kind of captured interaction.
type Type int

const (
	// TypeInterrupt is a byte delivered by the device to the host, or an
	// interrupt that fired without any data.
	TypeInterrupt Type = iota + 1
	// TypeCommand is a command byte sent by the host to the device.
	TypeCommand
	// TypeParameter is a command parameter byte sent by the host.
	TypeParameter
	// TypeReturn is a response byte the device returned for a command.
	TypeReturn
	// TypeKbdData is data written out through the keyboard port.
	TypeKbdData
)

// label returns the type as it appears inside the trace parentheses.
func (t Type) label() string {
	switch t {
	case TypeInterrupt:
		return "interrupt"
	case TypeCommand:
		return "command"
	case TypeParameter:
		return "parameter"
	case TypeReturn:
		return "return"
	case TypeKbdData:
		return "kbd-data"
	}
	return "unknown"
}

// String returns a human-readable name for the type.
func (t Type) String() string {
	return t.label()
}

// Event is one captured PS/2 interaction.
//
// Time is in microseconds since the recording origin. HasData is false
// only for interrupts that fired without data; every other type always
// carries Data. Port and IRQ are meaningful only when Type is
// TypeInterrupt.
type Event struct {
	Type    Type
	Time    int64
	Data    byte
	HasData bool
	Port    int
	IRQ     int
}

// LogLine renders the event in the trace grammar, without a trailing
// newline. Direction markers are cosmetic on parse: host-to-device
// types render "<-", device-to-host types render "->".
func (e Event) LogLine() string {
	if e.Type == TypeInterrupt && !e.HasData {
		return fmt.Sprintf("[%d] Interrupt %d, without any data", e.Time, e.IRQ)
	}

	dir := "->"
	if e.Type == TypeCommand || e.Type == TypeParameter {
		dir = "<-"
	}

	label := e.Type.label()
	if e.Type == TypeInterrupt {
		label = fmt.Sprintf("interrupt,%d,%d", e.Port, e.IRQ)
	}

	return fmt.Sprintf("[%d] %02x %s i8042 (%s)", e.Time, e.Data, dir, label)
}
