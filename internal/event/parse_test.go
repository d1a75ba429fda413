package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Interrupt(t *testing.T) {
	e, ok, err := ParsePayload("[12345] 1c -> i8042 (interrupt,0,1)")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Event{
		Type:    TypeInterrupt,
		Time:    12345,
		Data:    0x1c,
		HasData: true,
		Port:    0,
		IRQ:     1,
	}, e)
}

func TestParsePayload_SimpleTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
	}{
		{
			name:    "command",
			payload: "[200] ed <- i8042 (command)",
			want:    Event{Type: TypeCommand, Time: 200, Data: 0xed, HasData: true},
		},
		{
			name:    "parameter",
			payload: "[300] 02 <- i8042 (parameter)",
			want:    Event{Type: TypeParameter, Time: 300, Data: 0x02, HasData: true},
		},
		{
			name:    "return",
			payload: "[400] fa -> i8042 (return)",
			want:    Event{Type: TypeReturn, Time: 400, Data: 0xfa, HasData: true},
		},
		{
			name:    "kbd-data",
			payload: "[500] aa -> i8042 (kbd-data)",
			want:    Event{Type: TypeKbdData, Time: 500, Data: 0xaa, HasData: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok, err := ParsePayload(tt.payload)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, e)
		})
	}
}

func TestParsePayload_InterruptWithoutData(t *testing.T) {
	e, ok, err := ParsePayload("[12345] Interrupt 12, without any data")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, TypeInterrupt, e.Type)
	assert.Equal(t, int64(12345), e.Time)
	assert.Equal(t, 12, e.IRQ)
	assert.False(t, e.HasData)
	assert.Zero(t, e.Data)
	assert.Zero(t, e.Port)
}

func TestParsePayload_NonNumericPort(t *testing.T) {
	_, ok, err := ParsePayload("[100] 1c -> i8042 (interrupt,abc,5)")
	assert.False(t, ok)
	require.Error(t, err, "bad port must abort, not default to 0")
	assert.True(t, IsFormatError(err))
}

func TestParsePayload_NonNumericIRQ(t *testing.T) {
	_, ok, err := ParsePayload("[100] 1c -> i8042 (interrupt,0,five)")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestParsePayload_InterruptMissingArgs(t *testing.T) {
	_, ok, err := ParsePayload("[100] 1c -> i8042 (interrupt,0)")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestParsePayload_NoiseIsSkipped(t *testing.T) {
	noise := []string{
		"",
		"serio: i8042 KBD port at 0x60,0x64 irq 1",
		"[100] not hex -> i8042 (command)",
		"[100] 1c -> i8042 (selftest)",
		"[nope] 1c -> i8042 (command)",
		"[100] 1c >> i8042 (command)",
		"[100] 1c -> i8043 (command)",
		"Interrupt 12, without any data",
	}

	for _, payload := range noise {
		e, ok, err := ParsePayload(payload)
		assert.NoError(t, err, "payload %q", payload)
		assert.False(t, ok, "payload %q should not parse to %+v", payload, e)
	}
}

func TestParsePayload_TrailingNewline(t *testing.T) {
	e, ok, err := ParsePayload("[12345] 1c -> i8042 (interrupt,0,1)\n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(12345), e.Time)
}
