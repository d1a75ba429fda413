package event

import (
	"strconv"
	"strings"
)

// ParsePayload recognizes one event in a trace payload (the text after
// the "i8042: " tag in a kernel line, or the event payload of a
// recorded log line).
//
// The return conventions mirror how callers must treat lines:
//   - (event, true, nil): the payload is a well-formed event.
//   - (zero, false, nil): the payload matches no event shape; callers
//     skip it as unrelated trace noise.
//   - (zero, false, err): the payload matched an event shape but is
//     malformed; callers must abort the whole read.
func ParsePayload(payload string) (Event, bool, error) {
	payload = strings.TrimRight(payload, " \t\r\n")

	e, ok, err := parseNormal(payload)
	if ok || err != nil {
		return e, ok, err
	}

	if e, ok := parseInterruptWithoutData(payload); ok {
		return e, true, nil
	}

	return Event{}, false, nil
}

// parseNormal handles the shape
//
//	[<time>] <hex-byte> <dir> i8042 (<label>[,<arg>]*)
//
// The direction marker is consumed, not stored.
func parseNormal(payload string) (Event, bool, error) {
	rest, ok := strings.CutPrefix(payload, "[")
	if !ok {
		return Event{}, false, nil
	}

	timeStr, rest, ok := strings.Cut(rest, "]")
	if !ok {
		return Event{}, false, nil
	}

	t, err := strconv.ParseInt(strings.TrimSpace(timeStr), 10, 64)
	if err != nil {
		return Event{}, false, nil
	}

	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return Event{}, false, nil
	}

	data, err := strconv.ParseUint(fields[0], 16, 8)
	if err != nil {
		return Event{}, false, nil
	}

	if fields[1] != "->" && fields[1] != "<-" {
		return Event{}, false, nil
	}

	if fields[2] != "i8042" {
		return Event{}, false, nil
	}

	label, ok := strings.CutPrefix(fields[3], "(")
	if !ok {
		return Event{}, false, nil
	}
	label, ok = strings.CutSuffix(label, ")")
	if !ok {
		return Event{}, false, nil
	}

	e := Event{
		Time:    t,
		Data:    byte(data),
		HasData: true,
	}

	args := strings.Split(label, ",")
	switch args[0] {
	case "interrupt":
		// Both extra args are required and must parse; a bad value is a
		// hard error, never defaulted.
		if len(args) < 3 {
			return Event{}, false, &FormatError{
				Payload: payload,
				Reason:  "interrupt event with fewer arguments than expected",
			}
		}

		e.Type = TypeInterrupt

		e.Port, err = strconv.Atoi(args[1])
		if err != nil {
			return Event{}, false, &FormatError{
				Payload: payload,
				Reason:  "failed to parse port number from interrupt event",
				Err:     err,
			}
		}

		e.IRQ, err = strconv.Atoi(args[2])
		if err != nil {
			return Event{}, false, &FormatError{
				Payload: payload,
				Reason:  "failed to parse IRQ from interrupt event",
				Err:     err,
			}
		}
	case "command":
		e.Type = TypeCommand
	case "parameter":
		e.Type = TypeParameter
	case "return":
		e.Type = TypeReturn
	case "kbd-data":
		e.Type = TypeKbdData
	default:
		// Unknown labels are trace noise, not errors.
		return Event{}, false, nil
	}

	return e, true, nil
}

// parseInterruptWithoutData handles the shape
//
//	[<time>] Interrupt <irq>, without any data
//
// which the driver logs when an interrupt fires with nothing to read.
// The resulting event has HasData false and no port.
func parseInterruptWithoutData(payload string) (Event, bool) {
	rest, ok := strings.CutPrefix(payload, "[")
	if !ok {
		return Event{}, false
	}

	timeStr, rest, ok := strings.Cut(rest, "]")
	if !ok {
		return Event{}, false
	}

	t, err := strconv.ParseInt(strings.TrimSpace(timeStr), 10, 64)
	if err != nil {
		return Event{}, false
	}

	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " "), "Interrupt ")
	if !ok {
		return Event{}, false
	}

	irqStr, ok := strings.CutSuffix(rest, ", without any data")
	if !ok {
		return Event{}, false
	}

	irq, err := strconv.Atoi(irqStr)
	if err != nil {
		return Event{}, false
	}

	return Event{
		Type:    TypeInterrupt,
		Time:    t,
		IRQ:     irq,
		HasData: false,
	}, true
}
