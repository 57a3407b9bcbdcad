package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidyarthi-io/scholarseek/internal/search"
)

// browseOptions holds CLI flags for browse.
type browseOptions struct {
	profile        profileOptions
	topK           int
	filterCategory string
	filterState    string
	onlyEligible   bool
	jsonOutput     bool
}

func newBrowseCmd() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List scholarships without a query",
		Long: `List catalog records in their original order, scored against your
profile. No retrieval or ranking runs; filters still apply.

Examples:
  scholarseek browse
  scholarseek browse --filter-category SC --only-eligible
  scholarseek browse --top-k 50 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}

	addProfileFlags(cmd, &opts.profile)
	cmd.Flags().IntVarP(&opts.topK, "top-k", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVar(&opts.filterCategory, "filter-category", "", "Only schemes open to this category")
	cmd.Flags().StringVar(&opts.filterState, "filter-state", "", "Only schemes open in this state")
	cmd.Flags().BoolVar(&opts.onlyEligible, "only-eligible", false, "Drop schemes you are not eligible for")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts browseOptions) error {
	eng, err := newEngine(cfgPath)
	if err != nil {
		return err
	}
	defer eng.close()

	resp, err := eng.pipeline.Browse(cmd.Context(), search.Request{
		Profile: opts.profile.profile(),
		Filters: search.Filters{
			Category: opts.filterCategory,
			State:    opts.filterState,
		},
		TopK:         opts.topK,
		OnlyEligible: opts.onlyEligible,
	}, nil)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), resp)
	}
	return renderText(cmd.OutOrStdout(), resp)
}
