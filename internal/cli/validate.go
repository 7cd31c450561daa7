package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/exprdoc"
)

// ValidationResult holds validation results for one document.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <expr.yaml>...",
		Short: "Validate expression documents",
		Long: `Decode each expression document and check the structural
preconditions the matcher assumes: flattened sums and products, total
constants, well-formed leaves. Exit code 1 when any document fails.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]ValidationResult, 0, len(paths))
	failures := 0
	for _, path := range paths {
		r := ValidationResult{File: path, Valid: true}
		if err := validateDocument(path); err != nil {
			r.Valid = false
			r.Error = err.Error()
			failures++
		}
		results = append(results, r)
	}

	if formatter.Format == "json" {
		if err := formatter.SuccessJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(formatter.Writer, "ok   %s\n", r.File)
			} else {
				fmt.Fprintf(formatter.Writer, "FAIL %s: %s\n", r.File, r.Error)
			}
		}
	}

	if failures > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d document(s) failed validation", failures))
	}
	return nil
}

func validateDocument(path string) error {
	e, err := exprdoc.Load(path)
	if err != nil {
		return err
	}
	return expr.Validate(e)
}
