package i8042

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Control drives the i8042 debug switches. The zero value is not
// usable; get one from DefaultControl and override paths as needed.
type Control struct {
	// SysfsRoot is the platform device directory holding serio*/drvctl.
	SysfsRoot string

	// DebugParam is the module parameter file toggling trace output.
	DebugParam string

	// KmsgPath is where the start marker is written.
	KmsgPath string
}

// DefaultControl returns a Control wired to the live system paths.
func DefaultControl() *Control {
	return &Control{
		SysfsRoot:  "/sys/devices/platform/i8042",
		DebugParam: "/sys/module/i8042/parameters/debug",
		KmsgPath:   "/dev/kmsg",
	}
}

// EnableDebugging turns the driver trace on and returns the start
// time written to the kernel log, which the capture side uses to find
// where this recording begins.
//
// The serio devices are detached before anything else; this prevents
// traffic racing ahead of the marker. They are reattached afterwards
// so their init handshake lands in the trace.
func (c *Control) EnableDebugging() (int64, error) {
	drvctls, err := c.drvctlPaths()
	if err != nil {
		return 0, fmt.Errorf("while opening %s: %w", c.SysfsRoot, err)
	}

	for _, path := range drvctls {
		if err := writeFile(path, "none"); err != nil {
			return 0, err
		}
	}

	// The value only needs to distinguish this recording from earlier
	// ones in the same kernel log.
	startTime := time.Now().UnixMicro()
	marker := fmt.Sprintf("ps2emu: Start recording %d\n", startTime)
	if err := writeFile(c.KmsgPath, marker); err != nil {
		return 0, err
	}

	if err := writeFile(c.DebugParam, "1\n"); err != nil {
		return 0, err
	}

	for _, path := range drvctls {
		if err := writeFile(path, "rescan"); err != nil {
			return 0, err
		}
	}

	return startTime, nil
}

// DisableDebugging turns the driver trace back off.
func (c *Control) DisableDebugging() error {
	return writeFile(c.DebugParam, "0\n")
}

// drvctlPaths lists the drvctl control file of every serio device.
func (c *Control) drvctlPaths() ([]string, error) {
	entries, err := os.ReadDir(c.SysfsRoot)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "serio") {
			continue
		}
		paths = append(paths, filepath.Join(c.SysfsRoot, entry.Name(), "drvctl"))
	}

	return paths, nil
}

func writeFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("while opening %s: %w", path, err)
	}

	_, werr := f.WriteString(data)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("while writing to %s: %w", path, werr)
	}
	return cerr
}
