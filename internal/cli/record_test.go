package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtdev/ps2emu/internal/store"
)

// kernelLog is a saved kernel log with one host command, one AUX
// interrupt, one KBD interrupt and some unrelated noise.
const kernelLog = `[    3.141593] i8042: [100] f4 <- i8042 (command)
[    3.141600] usb 1-1: new full-speed USB device
[    3.141700] i8042: [150] 55 -> i8042 (interrupt,1,12)
[    3.141800] i8042: [160] 1c -> i8042 (interrupt,0,1)
`

func writeKernelLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kmsg.txt")
	require.NoError(t, os.WriteFile(path, []byte(kernelLog), 0o644))
	return path
}

func TestRecordRejectsInvalidYesNo(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--record-aux=maybe"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for --record-aux")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRecordNothingToRecord(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--record-kbd=no", "--record-aux=no"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to record")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRecordFromLogDefaultFilter(t *testing.T) {
	kmsg := writeKernelLog(t)
	out := filepath.Join(t.TempDir(), "session.log")

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--from-log", kmsg, "-o", out})

	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(out)
	require.NoError(t, err)

	// The KBD interrupt on port 0 is filtered out by default.
	want := "# ps2emu-record V1\n" +
		"S: main\n" +
		"E: [100] f4 <- i8042 (command)\n" +
		"E: [150] 55 -> i8042 (interrupt,1,12)\n"
	assert.Equal(t, want, string(got))
}

func TestRecordFromLogKeyboardOnly(t *testing.T) {
	kmsg := writeKernelLog(t)
	buf := &bytes.Buffer{}

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--from-log", kmsg, "--record-kbd=yes", "--record-aux=no"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "E: [160] 1c -> i8042 (interrupt,0,1)\n")
	assert.NotContains(t, buf.String(), "interrupt,1,12")
}

func TestRecordFromLogArchive(t *testing.T) {
	kmsg := writeKernelLog(t)
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "session.log")
	dbPath := filepath.Join(tmpDir, "sessions.db")

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--from-log", kmsg, "-o", out,
		"--archive", "--db", dbPath, "--note", "from test",
	})

	require.NoError(t, cmd.Execute())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	infos, err := st.ListRecordings(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].Events)
	assert.Equal(t, "from test", infos[0].Note)
}

func TestRecordFromLogMissingFile(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRecordCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--from-log", filepath.Join(t.TempDir(), "missing.txt")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
