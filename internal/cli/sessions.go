package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/virtdev/ps2emu/internal/logfile"
	"github.com/virtdev/ps2emu/internal/store"
)

// SessionsOptions holds flags shared by the sessions subcommands.
type SessionsOptions struct {
	*RootOptions
	Database string
	Output   string
	Note     string
}

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage the session archive",
		Long: `Manage recorded sessions kept in the local archive.

Sessions land in the archive with "ps2emu record --archive" or
"ps2emu sessions import", and replay directly from it with
"ps2emu replay --session <id>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "",
		"session archive path (defaults to config archive_path)")

	cmd.AddCommand(newSessionsListCommand(opts))
	cmd.AddCommand(newSessionsExportCommand(opts))
	cmd.AddCommand(newSessionsImportCommand(opts))
	cmd.AddCommand(newSessionsDeleteCommand(opts))

	return cmd
}

// openArchive opens the configured session archive.
func openArchive(opts *SessionsOptions) (*store.Store, error) {
	path := opts.Database
	if path == "" {
		path = opts.Config().ArchivePath
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open session archive", err)
	}
	return st, nil
}

// sessionView is the JSON shape of one archived session.
type sessionView struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	LogVersion int    `json:"log_version"`
	Note       string `json:"note,omitempty"`
	Events     int    `json:"events"`
}

func newSessionsListCommand(opts *SessionsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List archived sessions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.ListRecordings(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list sessions", err)
			}

			if opts.Format == "json" {
				views := make([]sessionView, 0, len(infos))
				for _, info := range infos {
					views = append(views, sessionView{
						ID:         info.ID,
						CreatedAt:  info.CreatedAt,
						LogVersion: info.LogVersion,
						Note:       info.Note,
						Events:     info.Events,
					})
				}
				resp := CLIResponse{Status: "ok", Data: views}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived sessions.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tVERSION\tEVENTS\tNOTE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
					info.ID, info.CreatedAt, info.LogVersion, info.Events, info.Note)
			}
			return tw.Flush()
		},
	}
}

func newSessionsExportCommand(opts *SessionsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "export <id>",
		Short:         "Export an archived session as an event log",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			l, err := st.LoadRecording(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "failed to load session", err)
			}

			out, err := logfile.Create(opts.Output)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to create event log", err)
			}

			if err := logfile.WriteLog(out, l); err != nil {
				out.Close()
				return WrapExitError(ExitFailure, "failed to write event log", err)
			}
			if err := out.Close(); err != nil {
				return WrapExitError(ExitFailure, "failed to finish event log", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported session %s to %s\n", args[0], opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "",
		"event log file to write (.gz compresses)")
	cmd.MarkFlagRequired("output")

	return cmd
}

func newSessionsImportCommand(opts *SessionsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "import <event_log>",
		Short:         "Import an event log into the archive",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := logfile.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read event log", err)
			}

			st, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.SaveRecording(cmd.Context(), l, opts.Note)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to import session", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as session %s\n", args[0], id)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Note, "note", "", "note stored with the session")

	return cmd
}

func newSessionsDeleteCommand(opts *SessionsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an archived session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRecording(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "failed to delete session", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
}
