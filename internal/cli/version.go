package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/present/format"
	"github.com/mithrel/scalemate/internal/version"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if asJSON {
				return format.WriteJSON(cmd.OutOrStdout(), info, true)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "scalemate %s (commit %s, built %s, %s)\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
