// Package device speaks the ps2emu virtual-device command protocol.
//
// Commands travel tool-to-device as fixed 2-byte frames {command,
// data} with no length prefix or checksum. Bytes the emulated driver
// stack produces outward come back as plain unframed single bytes.
// The channel must stay unbuffered so the timing and ordering the
// replay engine observes match what is physically sent.
package device
