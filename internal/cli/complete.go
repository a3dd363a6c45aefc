package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/util"
)

// completeFrom fuzzy-matches toComplete against candidates for shell completion.
func completeFrom(candidates []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return util.ScoreCompletions(toComplete, candidates, 20), cobra.ShellCompDirectiveNoFileComp
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
