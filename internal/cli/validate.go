package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tlind/krakenprobe/internal/scenario"
)

// FileIssue is a scenario file that failed validation.
type FileIssue struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ValidationResult holds scenario-lint results.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Files  int         `json:"files"`
	Issues []FileIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without sending requests",
		Long: `Validate scenario YAML files without talking to the exchange.

Checks syntax, required fields, and that every expect.shape tag names a
known validator. Faster feedback than a full check when editing
scenarios.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := scenario.Discover(scenariosDir, "")
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "failed to discover scenarios", Err: err}
	}

	w := cmd.OutOrStdout()
	result := ValidationResult{Valid: true, Files: len(files)}

	for _, f := range files {
		if _, err := scenario.Load(f); err != nil {
			result.Valid = false
			result.Issues = append(result.Issues, FileIssue{
				File:  f,
				Error: err.Error(),
			})
			if opts.Format != "json" {
				fmt.Fprintf(w, "✗ %s\n", filepath.Base(f))
				fmt.Fprintf(w, "  %v\n", err)
			}
			continue
		}
		if opts.Format != "json" {
			fmt.Fprintf(w, "✓ %s\n", filepath.Base(f))
		}
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeValidateFailed,
				Message: fmt.Sprintf("%d file(s) invalid", len(result.Issues)),
			}
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Validated %d file(s), %d invalid\n", result.Files, len(result.Issues))
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) invalid", len(result.Issues)))
	}
	return nil
}
