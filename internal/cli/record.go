package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/virtdev/ps2emu/internal/capture"
	"github.com/virtdev/ps2emu/internal/event"
	"github.com/virtdev/ps2emu/internal/i8042"
	"github.com/virtdev/ps2emu/internal/logfile"
	"github.com/virtdev/ps2emu/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	RecordKBD string
	RecordAUX string
	Output    string
	FromLog   string
	Archive   bool
	Database  string
	Note      string
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record PS/2 devices",
		Long: `Record all of the commands going in and out of a PS/2 port, so that
they may later be replayed using a virtual PS/2 controller on another
machine.

By default the keyboard port is not recorded, because keyboard traffic
can contain sensitive input such as passwords. Enable it explicitly
with --record-kbd=yes once you have read the documentation.

Examples:
  ps2emu record -o touchpad.log
  ps2emu record --record-kbd=yes --record-aux=no -o kbd.log.gz
  ps2emu record --from-log saved-kmsg.txt -o session.log --archive`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RecordKBD, "record-kbd", "no",
		"record the KBD (keyboard) port <yes|no>")
	cmd.Flags().StringVar(&opts.RecordAUX, "record-aux", "yes",
		"record the AUX (auxiliary, usually cursor devices) port <yes|no>")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-",
		"output log file, - for stdout (.gz compresses)")
	cmd.Flags().StringVar(&opts.FromLog, "from-log", "",
		"read a saved kernel log instead of the live one (skips debug control)")
	cmd.Flags().BoolVar(&opts.Archive, "archive", false,
		"also save the recording to the session archive")
	cmd.Flags().StringVar(&opts.Database, "db", "",
		"session archive path (defaults to config archive_path)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "note stored with the archived session")

	return cmd
}

// parseYesNo mirrors the historical <yes|no> flag values.
func parseYesNo(flag, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, NewExitError(ExitCommandError, "invalid value for --"+flag+": `"+value+"`")
}

func runRecord(opts *RecordOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	recordKBD, err := parseYesNo("record-kbd", opts.RecordKBD)
	if err != nil {
		return err
	}
	recordAUX, err := parseYesNo("record-aux", opts.RecordAUX)
	if err != nil {
		return err
	}
	if !recordKBD && !recordAUX {
		return NewExitError(ExitCommandError, "nothing to record")
	}

	cfg := opts.Config()

	captureOpts := capture.Options{
		Filter: capture.Filter{KBD: recordKBD, AUX: recordAUX},
	}

	var input io.ReadCloser
	if opts.FromLog != "" {
		input, err = logfile.Open(opts.FromLog)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to open kernel log", err)
		}
	} else {
		ctl := &i8042.Control{
			SysfsRoot:  cfg.SysfsRoot,
			DebugParam: cfg.DebugParamPath,
			KmsgPath:   cfg.KmsgPath,
		}

		startTime, err := ctl.EnableDebugging()
		if err != nil {
			return WrapExitError(ExitFailure, "failed to enable i8042 debugging", err)
		}
		captureOpts.ResumeAt = startTime
		defer func() {
			if err := ctl.DisableDebugging(); err != nil {
				logger.Warn("failed to disable i8042 debugging", "error", err)
			}
		}()

		// A termination signal mid-recording still restores the debug
		// parameter before exiting.
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			<-sigs
			if err := ctl.DisableDebugging(); err != nil {
				logger.Warn("failed to disable i8042 debugging", "error", err)
			}
			os.Exit(ExitSuccess)
		}()

		input, err = os.Open(cfg.KmsgPath)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to open kernel log", err)
		}
	}
	defer input.Close()

	var output io.WriteCloser = nopWriteCloser{cmd.OutOrStdout()}
	if opts.Output != "-" {
		output, err = logfile.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to create output log", err)
		}
	}

	var recorded []event.Event
	captureOpts.OnEvent = func(e event.Event) {
		recorded = append(recorded, e)
		logger.Debug("captured event", "type", e.Type.String(), "time", e.Time)
	}

	if err := capture.Record(input, output, captureOpts); err != nil {
		output.Close()
		return WrapExitError(ExitFailure, "recording failed", err)
	}
	if err := output.Close(); err != nil {
		return WrapExitError(ExitFailure, "failed to finish output log", err)
	}

	if opts.Archive {
		if err := archiveRecording(opts, recorded, logger); err != nil {
			return err
		}
	}

	return nil
}

// archiveRecording saves the captured events as a session.
func archiveRecording(opts *RecordOptions, events []event.Event, logger *slog.Logger) error {
	path := opts.Database
	if path == "" {
		path = opts.Config().ArchivePath
	}

	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open session archive", err)
	}
	defer st.Close()

	l := &logfile.Log{Version: logfile.Version, Main: events}
	id, err := st.SaveRecording(context.Background(), l, opts.Note)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to archive session", err)
	}

	logger.Info("session archived", "id", id, "events", len(events))
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
