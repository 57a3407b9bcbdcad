package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vidyarthi-io/scholarseek/internal/search"
)

// renderJSON writes the full response as indented JSON.
func renderJSON(w io.Writer, resp *search.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// renderText writes a human-readable result listing.
func renderText(w io.Writer, resp *search.Response) error {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No scholarships found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d scholarships", resp.Total)
	if resp.CacheHit {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintf(w, " in %.1fms\n\n", resp.LatencyMS)

	for i, r := range resp.Results {
		fmt.Fprintf(w, "%d. %s\n", i+1, r.Name)
		fmt.Fprintf(w, "   %s", r.Provider)
		if r.Amount > 0 {
			fmt.Fprintf(w, " | Rs %d", r.Amount)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "   Match %d/100 (%s)", r.MatchScore, r.EligibilityStatus)
		if r.Boost > 0 {
			fmt.Fprintf(w, " +%.0f%% personalized", r.Boost*100)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "   Deadline: %s\n", deadlineLine(r))

		if failed := failedCriteria(r); len(failed) > 0 {
			fmt.Fprintf(w, "   Unmet: %s\n", strings.Join(failed, ", "))
		}
		if len(r.ScamIndicators) > 0 {
			fmt.Fprintf(w, "   WARNING: scam indicators detected (%s)\n",
				strings.Join(r.ScamIndicators, "; "))
		}
		if !r.IsSafe {
			fmt.Fprintf(w, "   WARNING: low trust source (%.2f)\n", r.SafetyTrustScore)
		}
		if len(r.MissingDocuments) > 0 {
			fmt.Fprintf(w, "   Documents to arrange: %s\n",
				strings.Join(r.MissingDocuments, ", "))
		}
		if r.ApplicationLink != "" {
			fmt.Fprintf(w, "   Apply: %s\n", r.ApplicationLink)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func deadlineLine(r search.Result) string {
	d := r.DeadlineInfo
	if d.Deadline == "" {
		return d.DisplayText
	}
	return fmt.Sprintf("%s (%s)", d.Deadline, d.DisplayText)
}

func failedCriteria(r search.Result) []string {
	var out []string
	for _, c := range r.MatchReasons {
		if !c.Passed && c.MaxPoints > 0 {
			out = append(out, c.Criterion)
		}
	}
	return out
}
