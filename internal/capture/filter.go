package capture

import "github.com/virtdev/ps2emu/internal/event"

// KeyboardPort is the i8042 port index of the KBD port.
const KeyboardPort = 0

// Filter selects which ports' traffic is kept during recording.
// Keyboard traffic is identifiable from the event alone: only a
// keyboard produces kbd-data, and keyboard interrupts carry the KBD
// port index. Everything else belongs to the AUX port.
type Filter struct {
	KBD bool
	AUX bool
}

// Keep reports whether e should be written to the recording.
func (f Filter) Keep(e event.Event) bool {
	if !f.KBD {
		if e.Type == event.TypeInterrupt && e.Port == KeyboardPort {
			return false
		}
		if e.Type == event.TypeKbdData {
			return false
		}
	}

	if !f.AUX {
		if e.Type == event.TypeInterrupt {
			if e.Port != KeyboardPort {
				return false
			}
		} else if e.Type != event.TypeKbdData {
			return false
		}
	}

	return true
}
