package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tlind/krakenprobe/internal/kraken"
	"github.com/tlind/krakenprobe/internal/probe"
	"github.com/tlind/krakenprobe/internal/report"
	"github.com/tlind/krakenprobe/internal/scenario"
	"github.com/tlind/krakenprobe/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Filter   string        // scenario filter (glob pattern)
	BaseURL  string        // API base URL
	Timeout  time.Duration // per-request timeout
	Parallel int           // concurrent scenarios
	History  string        // SQLite db to record the run in
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenarios-dir>",
		Short: "Run scenarios against the exchange",
		Long: `Run all scenario files in a directory against the exchange API.

Each scenario runs in isolation; a failing scenario never stops the
rest. Authenticated scenarios read credentials from ` + kraken.EnvAPIKey + `,
` + kraken.EnvAPISecret + ` and optionally ` + kraken.EnvOTP + `.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  krakenprobe check ./scenarios
  krakenprobe check ./scenarios --filter "public_*"
  krakenprobe check ./scenarios --parallel 4 --history runs.db
  krakenprobe check ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", kraken.DefaultBaseURL, "API base URL")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", kraken.DefaultTimeout, "per-request timeout")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 1, "number of scenarios to run concurrently")
	cmd.Flags().StringVar(&opts.History, "history", "", "record the run in this SQLite database")

	return cmd
}

func runCheck(opts *CheckOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	scenarios, loadFailures, err := scenario.LoadDir(scenariosDir, opts.Filter)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to load scenarios", Err: err}
	}

	if len(scenarios) == 0 && len(loadFailures) == 0 {
		if opts.Format == "json" {
			return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: &report.Report{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel(opts.Verbose),
	}))

	runner := probe.New(probe.Config{
		Client: kraken.New(kraken.Config{
			BaseURL: opts.BaseURL,
			Timeout: opts.Timeout,
		}),
		BaseURL:     opts.BaseURL,
		Credentials: credentialsFromEnv(),
		Parallel:    opts.Parallel,
		Logger:      logger,
	})

	rep := runner.Run(cmd.Context(), scenarios)

	// Files that failed to load are reported as configuration failures,
	// after the executed scenarios, in stable order.
	failedFiles := make([]string, 0, len(loadFailures))
	for f := range loadFailures {
		failedFiles = append(failedFiles, f)
	}
	sort.Strings(failedFiles)
	for _, f := range failedFiles {
		rep.Add(report.Outcome{
			Scenario: filepath.Base(f),
			Code:     string(probe.CodeConfig),
			Message:  loadFailures[f].Error(),
		})
	}

	if opts.History != "" {
		if err := recordRun(cmd, opts.History, rep); err != nil {
			return &ExitError{Code: ExitCommandError, Message: "failed to record run", Err: err}
		}
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: rep}
		if !rep.Ok() {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeCheckFailed,
				Message: fmt.Sprintf("%d scenario(s) failed", rep.Failed),
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		rep.WriteText(cmd.OutOrStdout())
	}

	if !rep.Ok() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", rep.Failed))
	}
	return nil
}

// recordRun appends the report to the history database.
func recordRun(cmd *cobra.Command, path string, rep *report.Report) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.WriteReport(cmd.Context(), rep)
}

// credentialsFromEnv loads credentials if present. Missing credentials
// are fine here; only authenticated scenarios need them, and those fail
// individually with CONFIG_ERROR.
func credentialsFromEnv() kraken.Credentials {
	creds, _ := kraken.CredentialsFromEnv()
	return creds
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
