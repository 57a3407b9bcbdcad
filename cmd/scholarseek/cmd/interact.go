package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyarthi-io/scholarseek/internal/config"
	"github.com/vidyarthi-io/scholarseek/internal/memory"
)

func newInteractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Record or inspect scholarship interactions",
		Long: `Interactions feed the personalization layer: shortlisting or clicking
a scheme boosts similar schemes in later searches for the same profile.`,
	}

	cmd.AddCommand(newInteractLogCmd())
	cmd.AddCommand(newInteractHistoryCmd())
	return cmd
}

func newInteractLogCmd() *cobra.Command {
	var (
		profile profileOptions
		name    string
		query   string
	)

	cmd := &cobra.Command{
		Use:   "log <shortlist|click> <scholarship-id>",
		Short: "Record one interaction",
		Long: `Record a shortlist or click for a scholarship. The interaction is
attributed to the pseudonymous id derived from the profile flags.

Examples:
  scholarseek interact log shortlist pm-scholarship-2026 --category SC
  scholarseek interact log click nsp-post-matric --name "Post Matric Scholarship"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractLog(cmd, args[0], args[1], profile, name, query)
		},
	}

	addProfileFlags(cmd, &profile)
	cmd.Flags().StringVar(&name, "name", "", "Scholarship name (improves future boost matching)")
	cmd.Flags().StringVar(&query, "query", "", "Search query that surfaced this scheme")

	return cmd
}

func runInteractLog(cmd *cobra.Command, kind, scholarshipID string, profile profileOptions, name, query string) error {
	st, err := openMemory()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	userID := memory.UserID(*profile.profile())
	if err := st.Log(cmd.Context(), memory.Interaction{
		UserID:          userID,
		ScholarshipID:   scholarshipID,
		ScholarshipName: name,
		Type:            kind,
		Query:           query,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s for user %s\n", kind, scholarshipID, userID)
	return nil
}

func newInteractHistoryCmd() *cobra.Command {
	var (
		profile profileOptions
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent interactions for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractHistory(cmd, profile, limit)
		},
	}

	addProfileFlags(cmd, &profile)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum interactions to show")

	return cmd
}

func runInteractHistory(cmd *cobra.Command, profile profileOptions, limit int) error {
	st, err := openMemory()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	userID := memory.UserID(*profile.profile())
	history, err := st.History(cmd.Context(), userID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintf(out, "No interactions recorded for user %s\n", userID)
		return nil
	}

	fmt.Fprintf(out, "Last %d interactions for user %s:\n", len(history), userID)
	for _, in := range history {
		line := fmt.Sprintf("  %s  %-9s %s", in.CreatedAt.Format("2006-01-02 15:04"), in.Type, in.ScholarshipID)
		if in.ScholarshipName != "" {
			line += "  (" + in.ScholarshipName + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// openMemory opens the interaction store from config. Unlike the search
// path, interact commands fail hard when memory is disabled: there is
// nothing useful to degrade to.
func openMemory() (*memory.Store, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if !cfg.Memory.Enabled {
		return nil, fmt.Errorf("interaction memory is disabled in config")
	}
	return memory.Open(cfg.Memory.DBPath)
}
