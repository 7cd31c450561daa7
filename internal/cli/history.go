package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bollu/Wheeler/internal/store"
)

// HistoryEntry is the output shape of one logged query with its reports.
type HistoryEntry struct {
	Query   store.QueryRecord   `json:"query"`
	Matches []store.MatchRecord `json:"matches,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var showMatches bool
	var filter store.Filter

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded match queries",
		Long: `List queries recorded with "wheeler match --record", in creation
order. With --matches, each query's reports are listed too.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, dbPath, showMatches, filter, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "wheeler.db", "query log database path")
	cmd.Flags().BoolVar(&showMatches, "matches", false, "include each query's match reports")
	cmd.Flags().StringVar(&filter.PatternContains, "pattern", "", "only queries whose pattern contains this substring")
	cmd.Flags().StringVar(&filter.SubjectContains, "subject", "", "only queries whose subject contains this substring")
	cmd.Flags().IntVar(&filter.MinMatches, "min-matches", 0, "only queries with at least this many reports")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "cap the number of listed queries (0 = no cap)")

	return cmd
}

func runHistory(opts *RootOptions, dbPath string, showMatches bool, filter store.Filter, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening query log", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	queries, err := s.Queries(ctx, filter)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading query log", err)
	}

	entries := make([]HistoryEntry, 0, len(queries))
	for _, q := range queries {
		entry := HistoryEntry{Query: q}
		if showMatches {
			matches, err := s.Matches(ctx, q.ID)
			if err != nil {
				_ = formatter.Error(err.Error(), nil)
				return WrapExitError(ExitCommandError, "reading query log", err)
			}
			entry.Matches = matches
		}
		entries = append(entries, entry)
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded queries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %s  %d match(es)  %s in %s\n",
			e.Query.ID, e.Query.CreatedAt, e.Query.MatchCount, e.Query.Pattern, e.Query.Subject)
		for _, m := range e.Matches {
			fmt.Fprintf(formatter.Writer, "  [%d] anchor %s paths %v\n", m.Ord, m.Anchor, m.Paths)
		}
	}
	return nil
}
