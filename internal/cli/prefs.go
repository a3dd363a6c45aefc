package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/present"
	"github.com/mithrel/scalemate/internal/settings"
	"github.com/mithrel/scalemate/internal/user"
	"github.com/mithrel/scalemate/internal/util"
)

// prefActs maps a preference to the act its change stands for.
var prefActs = map[settings.Name]user.Act{
	settings.Tempo:                   user.ActChangeTempo,
	settings.AudioTransposition:      user.ActTranspose,
	settings.RoleDisplayStyle:        user.ActChangeDisplayStyle,
	settings.HideScaleName:           user.ActRevealName,
	settings.ShowDoubleAccidentals:   user.ActToggleAccidentals,
	settings.ShowUncommonAccidentals: user.ActToggleAccidentals,
}

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Inspect and change preferences",
	}
	cmd.AddCommand(newPrefsListCmd())
	cmd.AddCommand(newPrefsGetCmd())
	cmd.AddCommand(newPrefsSetCmd())
	cmd.AddCommand(newPrefsResetCmd())
	return cmd
}

func newPrefsListCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every preference with its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			return present.RenderPreferences(cmd.OutOrStdout(), app.User.Preferences(), present.Options{
				Mode:    mode,
				Headers: !noHeaders,
			})
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output format: plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit column headers")
	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <name>",
		Short:             "Print one preference",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePreferenceName,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			name, err := resolvePreference(args[0])
			if err != nil {
				return err
			}
			p, _ := app.User.Preference(name)
			writeLine(cmd.OutOrStdout(), "%s", p.Value)
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change one preference",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completePreferenceName(cmd, args, toComplete)
			}
			if len(args) > 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			name, err := resolvePreference(args[0])
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return preferenceChoices(cmd.Context(), name), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			name, err := resolvePreferenceExact(args[0])
			if err != nil {
				return err
			}
			if err := app.User.SetPreference(name, args[1]); err != nil {
				return err
			}
			app.User.Performed(user.ActChangeSettings)
			if act, ok := prefActs[name]; ok {
				app.User.Performed(act)
			}
			p, _ := app.User.Preference(name)
			writeLine(cmd.OutOrStdout(), "%s = %s", p.Name, p.Value)
			return nil
		},
	}
}

func newPrefsResetCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:               "reset [name]",
		Short:             "Restore preferences to their defaults",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePreferenceName,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var names []settings.Name
			switch {
			case all && len(args) == 0:
				names = settings.Preferences
			case !all && len(args) == 1:
				name, err := resolvePreferenceExact(args[0])
				if err != nil {
					return err
				}
				names = []settings.Name{name}
			default:
				return fmt.Errorf("give a preference name or --all")
			}
			for _, n := range names {
				if err := app.User.ResetPreference(n); err != nil {
					return err
				}
			}
			app.User.Performed(user.ActChangeSettings)
			for _, n := range names {
				p, _ := app.User.Preference(n)
				writeLine(cmd.OutOrStdout(), "%s = %s", p.Name, p.Value)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "reset every preference")
	return cmd
}

func preferenceNames() []string {
	out := make([]string, 0, len(settings.Preferences))
	for _, n := range settings.Preferences {
		out = append(out, string(n))
	}
	return out
}

// resolvePreference accepts an exact or fuzzy preference name.
func resolvePreference(raw string) (settings.Name, error) {
	name, ok := util.Resolve(raw, preferenceNames())
	if !ok {
		return "", fmt.Errorf("%w: %s", user.ErrUnknownPreference, raw)
	}
	return settings.Name(name), nil
}

// resolvePreferenceExact accepts an exact name or a sole fuzzy match.
// Commands that change stored values use it.
func resolvePreferenceExact(raw string) (settings.Name, error) {
	name, candidates, ok := util.ResolveUnique(raw, preferenceNames())
	if ok {
		return settings.Name(name), nil
	}
	if len(candidates) > 0 {
		return "", fmt.Errorf("%w: %s is ambiguous (candidates: %s)", user.ErrUnknownPreference, raw, strings.Join(candidates, ", "))
	}
	return "", fmt.Errorf("%w: %s", user.ErrUnknownPreference, raw)
}

// preferenceChoices lists accepted values without touching the user's store.
func preferenceChoices(ctx context.Context, name settings.Name) []string {
	store, err := db.Open(ctx, "mem://")
	if err != nil {
		return nil
	}
	defer store.Close()
	p, _ := user.New(settings.New(ctx, store, nil)).Preference(name)
	return p.Choices
}

func completePreferenceName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeFrom(preferenceNames(), toComplete)
}
