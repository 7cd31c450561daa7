package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/match"
)

// ContainsResult is the output shape of a containment query.
type ContainsResult struct {
	Pattern  string `json:"pattern"`
	Subject  string `json:"subject"`
	Contains bool   `json:"contains"`
}

// NewContainsCommand creates the contains command.
func NewContainsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contains <pattern.yaml> <subject.yaml>",
		Short: "Test whether a pattern matches anywhere in a subject",
		Long: `Test whether the pattern matches anywhere inside the subject.

Short-circuits on the first successful anchor. Exit code 0 when a match
exists, 1 when none does.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContains(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runContains(opts *RootOptions, patternPath, subjectPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	pattern, subject, err := loadPair(patternPath, subjectPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading expressions", err)
	}

	found, err := match.Has(pattern, subject)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "matching", err)
	}

	result := ContainsResult{
		Pattern:  pattern.String(),
		Subject:  subject.String(),
		Contains: found,
	}
	if formatter.Format == "json" {
		if err := formatter.SuccessJSON(result); err != nil {
			return err
		}
	} else if found {
		fmt.Fprintf(formatter.Writer, "%s contains %s\n", result.Subject, result.Pattern)
	} else {
		fmt.Fprintf(formatter.Writer, "%s does not contain %s\n", result.Subject, result.Pattern)
	}

	if !found {
		return NewExitError(ExitFailure, "no match")
	}
	return nil
}
