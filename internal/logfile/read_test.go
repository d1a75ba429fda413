package logfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtdev/ps2emu/internal/event"
)

func TestRead_V1InitAndMain(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V1",
		"S: init",
		"E: [100] ed <- i8042 (command)",
		"E: [200] fa -> i8042 (return)",
		"S: main",
		"E: [300] 1c -> i8042 (interrupt,0,1)",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, l.Version)
	require.Len(t, l.Init, 2)
	require.Len(t, l.Main, 1)
	assert.Empty(t, l.Events)

	// Order is sequence equality, not set equality.
	assert.Equal(t, event.TypeCommand, l.Init[0].Type)
	assert.Equal(t, event.TypeReturn, l.Init[1].Type)
	assert.Equal(t, event.TypeInterrupt, l.Main[0].Type)
}

func TestRead_V1EmptyMain(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V1",
		"S: init",
		"E: [100] ed <- i8042 (command)",
		"S: main",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, l.Init, 1)
	assert.Empty(t, l.Main)
}

func TestRead_V0FlatList(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V0",
		"[100] ed <- i8042 (command)",
		"[200] fa -> i8042 (return)",
		"[300] 1c -> i8042 (interrupt,0,1)",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 0, l.Version)
	require.Len(t, l.Events, 3)
	assert.Empty(t, l.Init)
	assert.Empty(t, l.Main)

	assert.Equal(t, []int64{100, 200, 300}, []int64{
		l.Events[0].Time, l.Events[1].Time, l.Events[2].Time,
	})
}

func TestRead_V0SkipsNoise(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V0",
		"some unrelated kernel chatter",
		"[100] ed <- i8042 (command)",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, l.Events, 1)
}

func TestRead_OrderPreserved(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# ps2emu-record V1\nS: main\n")

	want := make([]int64, 0, 50)
	for i := int64(0); i < 50; i++ {
		ts := i * 37
		want = append(want, ts)
		sb.WriteString("E: ")
		sb.WriteString(event.Event{Type: event.TypeKbdData, Time: ts, Data: byte(i), HasData: true}.LogLine())
		sb.WriteString("\n")
	}

	l, err := Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, l.Main, len(want))

	got := make([]int64, 0, len(l.Main))
	for _, e := range l.Main {
		got = append(got, e.Time)
	}
	assert.Equal(t, want, got)
}

func TestRead_MissingHeader(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	var he *HeaderError
	require.ErrorAs(t, err, &he)
	assert.True(t, IsVersionError(err))
}

func TestRead_BadHeader(t *testing.T) {
	for _, input := range []string{
		"[100] ed <- i8042 (command)\n",
		"# ps2emu-record\n",
		"# ps2emu-record Vx\n",
		"# ps2emu-record V-1\n",
	} {
		_, err := Read(strings.NewReader(input))
		var he *HeaderError
		assert.ErrorAs(t, err, &he, "input %q", input)
	}
}

func TestRead_VersionTooNew(t *testing.T) {
	// Body is garbage on purpose: the version gate must fire before
	// any event is read.
	input := "# ps2emu-record V2\ncomplete garbage that would be fatal\n"

	_, err := Read(strings.NewReader(input))
	var te *TooNewError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 2, te.Found)
	assert.Equal(t, Version, te.Max)
	assert.True(t, IsVersionError(err))
}

func TestRead_UnknownSectionFatal(t *testing.T) {
	input := "# ps2emu-record V1\nS: warmup\n"

	_, err := Read(strings.NewReader(input))
	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Number)
	assert.False(t, IsVersionError(err))
}

func TestRead_V1UnrecognizedLineFatal(t *testing.T) {
	input := "# ps2emu-record V1\nS: main\nwhat is this\n"

	_, err := Read(strings.NewReader(input))
	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Number)
}

func TestRead_MalformedEventAborts(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V1",
		"S: main",
		"E: [100] 1c -> i8042 (interrupt,abc,5)",
	}, "\n") + "\n"

	_, err := Read(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, event.IsFormatError(err))

	var le *LineError
	require.ErrorAs(t, err, &le)
}

func TestRead_V1EventBeforeSectionGoesToMain(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V1",
		"E: [100] ed <- i8042 (command)",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, l.Main, 1)
}

func TestRead_V1NoiseEventLineSkipped(t *testing.T) {
	input := strings.Join([]string{
		"# ps2emu-record V1",
		"S: main",
		"E: [100] zz <- i8042 (command)",
		"E: [200] ed <- i8042 (command)",
	}, "\n") + "\n"

	l, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, l.Main, 1)
	assert.Equal(t, int64(200), l.Main[0].Time)
}
