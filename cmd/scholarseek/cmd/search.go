package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidyarthi-io/scholarseek/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	profile        profileOptions
	topK           int
	filterCategory string
	filterState    string
	onlyEligible   bool
	jsonOutput     bool
	showProgress   bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search scholarships with eligibility scoring",
		Long: `Search the scholarship catalog with hybrid retrieval (BM25 keyword
plus semantic matching, fused by reciprocal rank) and score every hit
against your profile with a criterion-by-criterion breakdown.

Examples:
  scholarseek search "engineering scholarship"
  scholarseek search "post matric" --category SC --income 200000
  scholarseek search "merit" --filter-state "West Bengal" --only-eligible
  scholarseek search "girls education" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	addProfileFlags(cmd, &opts.profile)
	cmd.Flags().IntVarP(&opts.topK, "top-k", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVar(&opts.filterCategory, "filter-category", "", "Only schemes open to this category")
	cmd.Flags().StringVar(&opts.filterState, "filter-state", "", "Only schemes open in this state")
	cmd.Flags().BoolVar(&opts.onlyEligible, "only-eligible", false, "Drop schemes you are not eligible for")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.showProgress, "progress", false, "Print pipeline stage events to stderr")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	eng, err := newEngine(cfgPath)
	if err != nil {
		return err
	}
	defer eng.close()

	var sink search.ProgressSink
	if opts.showProgress {
		sink = stderrSink(cmd)
	}

	resp, err := eng.pipeline.Search(cmd.Context(), search.Request{
		Query:   query,
		Profile: opts.profile.profile(),
		Filters: search.Filters{
			Category: opts.filterCategory,
			State:    opts.filterState,
		},
		TopK:         opts.topK,
		OnlyEligible: opts.onlyEligible,
	}, sink)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), resp)
	}
	return renderText(cmd.OutOrStdout(), resp)
}

// stderrSink prints stage events as single progress lines on stderr so
// stdout stays clean for results.
func stderrSink(cmd *cobra.Command) search.ProgressSink {
	return search.SinkFunc(func(e search.StageEvent) {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %-15s %s\n", e.Progress, e.Stage, e.Message)
	})
}
