package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/virtdev/ps2emu/internal/device"
	"github.com/virtdev/ps2emu/internal/logfile"
	"github.com/virtdev/ps2emu/internal/replay"
	"github.com/virtdev/ps2emu/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Device   string
	Session  string
	Database string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [event_log]",
		Short: "Replay a recorded PS/2 session",
		Long: `Replay a session previously recorded with "ps2emu record" against the
ps2emu kernel module, recreating the recorded device on this machine.

The session is read from the event_log argument, or from the session
archive with --session. Interrupts are sent with the recorded timing;
data the driver wrote to the device is awaited and compared against
the recording, with mismatches reported as warnings.

Examples:
  ps2emu replay touchpad.log
  ps2emu replay --session 2f1c... --db sessions.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "",
		"ps2emu device node (defaults to config device_path)")
	cmd.Flags().StringVar(&opts.Session, "session", "",
		"replay an archived session instead of a log file")
	cmd.Flags().StringVar(&opts.Database, "db", "",
		"session archive path (defaults to config archive_path)")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	if (len(args) == 0) == (opts.Session == "") {
		return NewExitError(ExitCommandError, "exactly one of an event_log argument or --session is required")
	}

	l, err := loadReplayLog(opts, args)
	if err != nil {
		return err
	}
	logger.Debug("loaded session",
		"version", l.Version,
		"events", len(l.Events)+len(l.Init)+len(l.Main))

	devicePath := opts.Device
	if devicePath == "" {
		devicePath = opts.Config().DevicePath
	}

	dev, err := device.Open(devicePath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open ps2emu device", err)
	}
	defer dev.Close()

	if err := device.Start(dev); err != nil {
		return WrapExitError(ExitFailure, "failed to start device", err)
	}

	en := replay.New(dev, cmd.OutOrStdout())
	if err := en.ReplayLog(l); err != nil {
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	return nil
}

// loadReplayLog reads the session from a log file or the archive.
func loadReplayLog(opts *ReplayOptions, args []string) (*logfile.Log, error) {
	if opts.Session != "" {
		path := opts.Database
		if path == "" {
			path = opts.Config().ArchivePath
		}

		st, err := store.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "failed to open session archive", err)
		}
		defer st.Close()

		l, err := st.LoadRecording(context.Background(), opts.Session)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "failed to load session", err)
		}
		return l, nil
	}

	l, err := logfile.ReadFile(args[0])
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to read event log", err)
	}
	return l, nil
}
