// Package replay walks parsed event lists and reproduces the recorded
// interaction against a device channel.
//
// Each list gets its own monotonic-clock origin captured when its
// replay starts; the init list fully finishes before the main list
// begins and the main origin is never inherited. Interrupts are sent
// with their recorded inter-event timing; every other event type is a
// byte the emulated driver stack must produce, which the engine reads
// and compares. Mismatches warn and continue; channel failures abort
// the current list.
package replay
