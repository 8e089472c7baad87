package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tlind/krakenprobe/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int    // max runs to list
	Run   string // show outcomes of one run instead of the listing
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <db>",
		Short: "List recorded probe runs",
		Long: `List probe runs recorded with check --history.

Without --run, prints the most recent runs, newest first. With --run,
prints the per-scenario outcomes of that run.

Examples:
  krakenprobe history runs.db
  krakenprobe history runs.db --limit 5
  krakenprobe history runs.db --run 0190e0f2-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the outcomes of a single run")

	return cmd
}

func runHistory(opts *HistoryOptions, dbPath string, cmd *cobra.Command) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("history database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to open history database", Err: err}
	}
	defer st.Close()

	if opts.Run != "" {
		return showRun(opts, st, cmd)
	}
	return listRuns(opts, st, cmd)
}

func listRuns(opts *HistoryOptions, st *store.Store, cmd *cobra.Command) error {
	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to list runs", Err: err}
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(w, CLIResponse{Status: "ok", Data: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		verdict := "pass"
		if r.Failed > 0 {
			verdict = "fail"
		}
		fmt.Fprintf(w, "%s  %s  %s  %d/%d passed  %s\n",
			r.StartedAt.UTC().Format("2006-01-02 15:04:05"),
			r.ID, verdict, r.Passed, r.Total, r.BaseURL)
	}
	return nil
}

func showRun(opts *HistoryOptions, st *store.Store, cmd *cobra.Command) error {
	outcomes, err := st.ReadOutcomes(cmd.Context(), opts.Run)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to read outcomes", Err: err}
	}
	if len(outcomes) == 0 {
		if opts.Format == "json" {
			resp := CLIResponse{
				Status: "error",
				Error:  &CLIError{Code: ErrCodeNotFound, Message: fmt.Sprintf("run %s not found", opts.Run)},
			}
			if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("run %s not found", opts.Run))
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(w, CLIResponse{Status: "ok", Data: outcomes})
	}

	for _, o := range outcomes {
		if o.Pass {
			fmt.Fprintf(w, "✓ %s (%dms)\n", o.Scenario, o.DurationMS)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", o.Scenario)
		fmt.Fprintf(w, "  [%s] %s\n", o.Code, o.Message)
	}
	return nil
}
