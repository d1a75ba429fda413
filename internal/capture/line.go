package capture

import "strings"

// Source identifies which subsystem produced a classified line.
type Source int

const (
	// SourceDriver marks output of the i8042 driver trace.
	SourceDriver Source = iota + 1
	// SourceMarker marks this tool's own kernel-log markers.
	SourceMarker
)

// Tags searched for in each raw line, in priority order. The driver
// tag is checked before the tool marker; a line somehow containing
// both is treated as driver trace.
var tags = []struct {
	tag    string
	source Source
}{
	{"i8042: ", SourceDriver},
	{"ps2emu: ", SourceMarker},
}

// classify finds which tag occurs in line and returns the source plus
// the payload following the tag. ok is false for unrelated lines,
// which callers skip.
func classify(line string) (source Source, payload string, ok bool) {
	for _, t := range tags {
		if idx := strings.Index(line, t.tag); idx >= 0 {
			return t.source, line[idx+len(t.tag):], true
		}
	}
	return 0, "", false
}
