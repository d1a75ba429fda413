// Package event defines the typed model for one captured PS/2
// interaction and the text grammar shared by the capture and replay
// sides.
//
// An Event is created once during parsing, owned by exactly one list,
// and never mutated afterward. The same line grammar serves two
// purposes: the i8042 kernel driver's debug trace uses it for the
// payload after the "i8042: " tag, and recorded event logs use it for
// the event payload, so logs stay directly comparable with raw kernel
// output.
package event
