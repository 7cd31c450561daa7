package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/exprdoc"
	"github.com/bollu/Wheeler/internal/rewrite"
)

// RewriteResult is the output shape of a rewrite run.
type RewriteResult struct {
	Subject   string `json:"subject"`
	Rewritten string `json:"rewritten"`
	Passes    int    `json:"passes"`
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand(rootOpts *RootOptions) *cobra.Command {
	var maxPasses int

	cmd := &cobra.Command{
		Use:   "rewrite <rules.yaml> <subject.yaml>",
		Short: "Apply rewrite rules to a subject until fixed point",
		Long: `Apply the rule list in document order, restarting after every
successful rewrite, until no rule matches. A pass quota bounds
non-terminating rule sets.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(rootOpts, args[0], args[1], maxPasses, cmd)
		},
	}

	cmd.Flags().IntVar(&maxPasses, "max-passes", rewrite.DefaultMaxPasses, "rewrite pass quota")

	return cmd
}

func runRewrite(opts *RootOptions, rulesPath, subjectPath string, maxPasses int, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ruleDocs, err := exprdoc.LoadRules(rulesPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading rules", err)
	}

	rules := make([]rewrite.Rule, len(ruleDocs))
	for i, rd := range ruleDocs {
		pattern, err := exprdoc.Build(rd.Pattern)
		if err != nil {
			_ = formatter.Error(err.Error(), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("rule %q pattern", rd.Name), err)
		}
		replacement, err := exprdoc.Build(rd.Replacement)
		if err != nil {
			_ = formatter.Error(err.Error(), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("rule %q replacement", rd.Name), err)
		}
		rules[i] = rewrite.Rule{Name: rd.Name, Pattern: pattern, Replacement: replacement}
	}

	subject, err := exprdoc.Load(subjectPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading subject", err)
	}

	formatter.VerboseLog("applying %d rule(s)", len(rules))

	result, passes, err := rewrite.Fixpoint(rules, subject, maxPasses)
	if err != nil {
		var quota *rewrite.QuotaError
		if errors.As(err, &quota) {
			_ = formatter.Error(err.Error(), result.String())
			return WrapExitError(ExitFailure, "rewriting", err)
		}
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "rewriting", err)
	}

	out := RewriteResult{Subject: subject.String(), Rewritten: result.String(), Passes: passes}
	if formatter.Format == "json" {
		return formatter.SuccessJSON(out)
	}
	fmt.Fprintf(formatter.Writer, "%s\n", out.Rewritten)
	formatter.VerboseLog("%d pass(es)", passes)
	return nil
}
