// Package harness runs replay conformance scenarios.
//
// A scenario is a YAML file holding an inline event log and the bytes
// a scripted device will produce. Running it replays the log against
// that fake device with a fake clock and records every channel frame
// and sleep as a trace, which golden files pin down exactly.
package harness
