package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLine_RoundTrip(t *testing.T) {
	events := []Event{
		{Type: TypeInterrupt, Time: 12345, Data: 0x1c, HasData: true, Port: 0, IRQ: 1},
		{Type: TypeInterrupt, Time: 900, Data: 0x55, HasData: true, Port: 1, IRQ: 12},
		{Type: TypeInterrupt, Time: 600, IRQ: 1},
		{Type: TypeCommand, Time: 200, Data: 0xed, HasData: true},
		{Type: TypeParameter, Time: 300, Data: 0x02, HasData: true},
		{Type: TypeReturn, Time: 400, Data: 0xfa, HasData: true},
		{Type: TypeKbdData, Time: 500, Data: 0xaa, HasData: true},
	}

	for _, want := range events {
		got, ok, err := ParsePayload(want.LogLine())
		require.NoError(t, err, "line %q", want.LogLine())
		require.True(t, ok, "line %q", want.LogLine())
		assert.Equal(t, want, got, "line %q", want.LogLine())
	}
}

func TestLogLine_Format(t *testing.T) {
	e := Event{Type: TypeInterrupt, Time: 12345, Data: 0x1c, HasData: true, Port: 0, IRQ: 1}
	assert.Equal(t, "[12345] 1c -> i8042 (interrupt,0,1)", e.LogLine())

	e = Event{Type: TypeCommand, Time: 200, Data: 0xed, HasData: true}
	assert.Equal(t, "[200] ed <- i8042 (command)", e.LogLine())

	e = Event{Type: TypeInterrupt, Time: 600, IRQ: 12}
	assert.Equal(t, "[600] Interrupt 12, without any data", e.LogLine())
}

func TestLogLine_DataPadding(t *testing.T) {
	e := Event{Type: TypeReturn, Time: 1, Data: 0x05, HasData: true}
	assert.Equal(t, "[1] 05 -> i8042 (return)", e.LogLine())
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "interrupt", TypeInterrupt.String())
	assert.Equal(t, "kbd-data", TypeKbdData.String())
	assert.Equal(t, "unknown", Type(0).String())
}
