package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/assets"
	"github.com/mithrel/scalemate/internal/user"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [document]",
		Short: "Render a bundled document",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeFrom(assets.Documents(), toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if len(args) == 1 {
				app.Cfg.Set("document", args[0])
			}
			doc, _, err := loadDocument(app)
			if err != nil {
				return err
			}
			app.User.Performed(user.ActReadDocument)
			return renderDocument(cmd, app, doc)
		},
	}
	return cmd
}
