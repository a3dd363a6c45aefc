package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/assets"
	"github.com/mithrel/scalemate/internal/util"
	"github.com/mithrel/scalemate/internal/wire"
)

func newGuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guide",
		Aliases: []string{"help-pages"},
		Short:   "Browse the help pages",
	}
	cmd.AddCommand(newGuideListCmd())
	cmd.AddCommand(newGuideShowCmd())
	return cmd
}

func newGuideListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List help pages; viewed pages are marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, p := range assets.HelpPages() {
				mark := " "
				if app.User.HasViewedHelpPage(p.Name) {
					mark = "✓"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, p.Name, p.Title)
			}
			return tw.Flush()
		},
	}
}

func newGuideShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <page>",
		Short: "Show a help page",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeFrom(assets.HelpPageNames(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			name, ok := util.Resolve(args[0], assets.HelpPageNames())
			if !ok {
				return fmt.Errorf("no help page matches %q", args[0])
			}
			page, err := assets.ReadHelpPage(name)
			if err != nil {
				return err
			}
			app.User.VisitedHelpPage(name)
			if err := renderDocument(cmd, app, page); err != nil {
				return err
			}
			return askForReview(cmd, app)
		},
	}
}

// askForReview runs the review gate after leaving help and waits for a
// scheduled prompt so it is printed before the command exits.
func askForReview(cmd *cobra.Command, app *wire.App) error {
	if !app.User.PossiblyAskForReview(cmd.Context()) {
		return nil
	}
	return app.Scheduler.Wait(cmd.Context())
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
