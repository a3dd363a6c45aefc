package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/present"
	"github.com/mithrel/scalemate/internal/user"
	"github.com/mithrel/scalemate/internal/util"
)

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect and drive usage tracking",
	}
	cmd.AddCommand(newUsageStatusCmd())
	cmd.AddCommand(newUsageActCmd())
	cmd.AddCommand(newUsageResetCmd())
	cmd.AddCommand(newUsageReviewCmd())
	cmd.AddCommand(newUsageHistoryCmd())
	return cmd
}

func newUsageStatusCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show acts, sessions and review state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			return present.RenderUsage(cmd.OutOrStdout(), app.User.Usage(), present.Options{Mode: mode, JSONIndent: true})
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output format: plain|json")
	return cmd
}

func actNames() []string {
	out := make([]string, 0, len(user.AllActs))
	for _, a := range user.AllActs {
		out = append(out, string(a))
	}
	return out
}

func newUsageActCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "act <act>[,<act>...]...",
		Short: "Record that acts were performed",
		Args:  cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeFrom(actNames(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var acts []user.Act
			for _, arg := range args {
				for _, raw := range splitCSV(arg) {
					act, ok := user.ParseAct(raw)
					if !ok {
						return fmt.Errorf("unknown act %q (known: %s)", raw, strings.Join(actNames(), ", "))
					}
					acts = append(acts, act)
				}
			}
			before := app.User.Usage().NumSessions
			for _, a := range acts {
				app.User.Performed(a)
			}
			u := app.User.Usage()
			writeLine(cmd.OutOrStdout(), "recorded %d act(s); %d distinct", len(acts), len(u.ActsTaken))
			if u.NumSessions > before {
				writeLine(cmd.OutOrStdout(), "session %d counted", u.NumSessions)
			}
			return nil
		},
	}
}

func newUsageResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget performed acts and viewed help pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			getApp(cmd).User.ResetActs()
			writeLine(cmd.OutOrStdout(), "acts and help pages reset")
			return nil
		},
	}
}

func newUsageReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Ask for a review if the user is eligible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if !app.User.PossiblyAskForReview(cmd.Context()) {
				writeLine(cmd.OutOrStdout(), "not eligible for a review prompt")
				return nil
			}
			return app.Scheduler.Wait(cmd.Context())
		},
	}
}

func newUsageHistoryCmd() *cobra.Command {
	var since string
	var limit int
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the usage log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			from, err := util.ParseSince(since, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			events, err := app.Store.ListEvents(cmd.Context(), from, limit)
			if err != nil {
				return err
			}
			return present.RenderEvents(cmd.OutOrStdout(), events, present.Options{
				Mode:    mode,
				Headers: !noHeaders,
			})
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only events after this time (e.g. 2h, 3d, 2024-06-01)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "keep only the latest N events (0 for all)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output format: plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit column headers")
	return cmd
}
