// Package capture turns the i8042 kernel driver's debug trace into a
// recorded event log.
//
// The kernel log carries traffic from every subsystem, so each line is
// first classified by which fixed tag it contains ("i8042: " for
// driver trace, "ps2emu: " for this tool's own markers) and then
// parsed under the trace grammar. Lines matching neither tag, and
// driver lines matching no event shape, are skipped; reaching the end
// of the stream is a normal end condition.
package capture
