// Package config loads the tool configuration. Every field has a
// builtin default matching the live system, so a config file only
// needs the paths it overrides. Unknown keys are rejected to catch
// typos.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the system paths and archive location the commands use.
type Config struct {
	// DevicePath is the ps2emu character device.
	DevicePath string `yaml:"device_path"`

	// KmsgPath is the kernel log read during capture.
	KmsgPath string `yaml:"kmsg_path"`

	// SysfsRoot is the i8042 platform device directory.
	SysfsRoot string `yaml:"sysfs_root"`

	// DebugParamPath is the i8042 debug module parameter file.
	DebugParamPath string `yaml:"debug_param_path"`

	// ArchivePath is the default session archive database.
	ArchivePath string `yaml:"archive_path"`
}

// Default returns the live-system configuration.
func Default() Config {
	return Config{
		DevicePath:     "/dev/ps2emu",
		KmsgPath:       "/dev/kmsg",
		SysfsRoot:      "/sys/devices/platform/i8042",
		DebugParamPath: "/sys/module/i8042/parameters/debug",
		ArchivePath:    "ps2emu.db",
	}
}

// Load reads a config file over the defaults. Unknown fields are an
// error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
