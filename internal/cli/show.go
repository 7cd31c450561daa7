package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/exprdoc"
)

// ShowNode is the output shape of one enumerated sub-expression.
type ShowNode struct {
	Path string `json:"path"`
	Expr string `json:"expr"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <expr.yaml>",
		Short: "Print an expression and its addressable sub-expressions",
		Long: `Decode an expression document and print the flat rendering plus
every addressable sub-expression with its breadcrumb path, in the
pre-order the matcher enumerates anchors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	e, err := exprdoc.Load(path)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading expression", err)
	}

	nodes := expr.Enumerate(e)
	views := make([]ShowNode, len(nodes))
	for i, n := range nodes {
		views[i] = ShowNode{Path: n.Path.Key(), Expr: n.Expr.String()}
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(views)
	}

	for _, v := range views {
		fmt.Fprintf(formatter.Writer, "%-20s %s\n", v.Path, v.Expr)
	}
	return nil
}
