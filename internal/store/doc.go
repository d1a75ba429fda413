// Package store archives recorded sessions in SQLite.
//
// A session is one parsed event log: its version plus ordered event
// rows keyed by (recording, seq). Reads return events in exactly the
// order they were captured, so a loaded session replays identically
// to the log file it came from.
package store
