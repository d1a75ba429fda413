// Package i8042 flips the kernel driver's debug trace on and off
// through its sysfs control files.
//
// Enabling detaches the serio devices first, writes a start marker to
// the kernel log, turns on the debug parameter, and rescans the
// devices so their initialization handshake is captured from the very
// beginning. All paths are injectable so the sequence is testable
// against a fake sysfs tree.
package i8042
