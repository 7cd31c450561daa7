package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/exprdoc"
	"github.com/bollu/Wheeler/internal/match"
	"github.com/bollu/Wheeler/internal/store"
)

// MatchReportView is the output shape of one match report.
type MatchReportView struct {
	Anchor   string            `json:"anchor"`
	Paths    []string          `json:"paths"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

// MatchResult is the output shape of a match query.
type MatchResult struct {
	Pattern string            `json:"pattern"`
	Subject string            `json:"subject"`
	Matches []MatchReportView `json:"matches"`
	QueryID string            `json:"query_id,omitempty"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	var recordDB string

	cmd := &cobra.Command{
		Use:   "match <pattern.yaml> <subject.yaml>",
		Short: "Find every place a pattern matches inside a subject",
		Long: `Find every sub-expression of the subject the pattern matches.

Reports one entry per successful anchor, in pre-order: the anchor path,
every matched path, and the pattern-variable bindings. Exit code 1 when
the pattern matches nowhere.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, args[0], args[1], recordDB, cmd)
		},
	}

	cmd.Flags().StringVar(&recordDB, "record", "", "record the query and its reports to this SQLite log")

	return cmd
}

func runMatch(opts *RootOptions, patternPath, subjectPath, recordDB string, cmd *cobra.Command) error {
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

	reports, err := match.FindAll(pattern, subject)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "matching", err)
	}

	result := MatchResult{
		Pattern: pattern.String(),
		Subject: subject.String(),
		Matches: reportViews(reports),
	}

	if recordDB != "" {
		id, err := recordQuery(cmd.Context(), recordDB, result, reports)
		if err != nil {
			_ = formatter.Error(err.Error(), nil)
			return WrapExitError(ExitCommandError, "recording query", err)
		}
		result.QueryID = id
		formatter.VerboseLog("recorded query %s to %s", id, recordDB)
	}

	if err := outputMatchResult(formatter, result); err != nil {
		return err
	}
	if len(reports) == 0 {
		return NewExitError(ExitFailure, "no match")
	}
	return nil
}

func loadPair(patternPath, subjectPath string) (pattern, subject expr.Expr, err error) {
	pattern, err = exprdoc.Load(patternPath)
	if err != nil {
		return nil, nil, fmt.Errorf("pattern: %w", err)
	}
	subject, err = exprdoc.Load(subjectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("subject: %w", err)
	}
	return pattern, subject, nil
}

func recordQuery(ctx context.Context, dbPath string, result MatchResult, reports []match.Report) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer s.Close()

	id := store.NewQueryID()
	if err := s.RecordQuery(ctx, id, result.Pattern, result.Subject, reports); err != nil {
		return "", err
	}
	return id, nil
}

// reportViews renders reports with deterministic binding order.
func reportViews(reports []match.Report) []MatchReportView {
	views := make([]MatchReportView, 0, len(reports))
	for _, rep := range reports {
		v := MatchReportView{
			Anchor:   rep.Anchor.Key(),
			Paths:    make([]string, len(rep.Matched)),
			Bindings: make(map[string]string, len(rep.Bindings)),
		}
		for i, p := range rep.Matched {
			v.Paths[i] = p.Key()
		}
		for name, e := range rep.Bindings {
			v.Bindings[name] = e.String()
		}
		views = append(views, v)
	}
	return views
}

func outputMatchResult(f *OutputFormatter, result MatchResult) error {
	if f.Format == "json" {
		return f.SuccessJSON(result)
	}

	if len(result.Matches) == 0 {
		fmt.Fprintf(f.Writer, "no match: %s in %s\n", result.Pattern, result.Subject)
		return nil
	}
	fmt.Fprintf(f.Writer, "%d match(es) of %s in %s\n", len(result.Matches), result.Pattern, result.Subject)
	for i, m := range result.Matches {
		fmt.Fprintf(f.Writer, "  [%d] anchor %s\n", i, m.Anchor)
		fmt.Fprintf(f.Writer, "      paths %v\n", m.Paths)
		if len(m.Bindings) > 0 {
			names := make([]string, 0, len(m.Bindings))
			for name := range m.Bindings {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(f.Writer, "      $%s := %s\n", name, m.Bindings[name])
			}
		}
	}
	if result.QueryID != "" {
		fmt.Fprintf(f.Writer, "recorded as %s\n", result.QueryID)
	}
	return nil
}
