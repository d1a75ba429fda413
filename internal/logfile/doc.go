// Package logfile reads and writes versioned ps2emu event logs.
//
// A log starts with the header "# ps2emu-record V<N>". Version 0
// bodies are one bare event payload per line, accumulated into a
// single flat list. Version 1 bodies interleave event lines ("E: "
// prefix) with section markers ("S: init" / "S: main") that switch
// the destination list; any other line is fatal.
//
// The reader enforces version gating before touching the body and
// preserves source order exactly. Files ending in ".gz" are
// transparently compressed.
package logfile
