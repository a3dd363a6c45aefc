package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mithrel/scalemate/internal/assets"
	"github.com/mithrel/scalemate/internal/config"
	"github.com/mithrel/scalemate/internal/present/tui"
	"github.com/mithrel/scalemate/internal/user"
	"github.com/mithrel/scalemate/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipApp marks commands that run without opening the settings store.
const skipApp = "skip-app"

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scalemate",
		Short:         "ScaleMate: scales, preferences and help in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipApp] != "" {
				return nil
			}
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			app, err := wire.BuildApp(cmd.Context(), v, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
		RunE: runViewer,
	}

	cmd.PersistentFlags().String("config", "", "path to config file (toml)")
	cmd.PersistentFlags().String("document", "", "bundled document to open")
	cmd.PersistentFlags().String("style", "", "glamour style")
	cmd.PersistentFlags().Int("width", 0, "word wrap column (0 follows the terminal)")
	cmd.PersistentFlags().Bool("plain", false, "print Markdown without rendering")

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newGuideCmd())
	cmd.AddCommand(newPrefsCmd())
	cmd.AddCommand(newUsageCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs root and then closes the app the executed command opened,
// whether or not the command failed.
func Execute(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	if cmd == nil {
		return err
	}
	if app, ok := lookupApp(cmd); ok {
		if cerr := app.Close(ctx); err == nil {
			err = cerr
		}
	}
	return err
}

// loadConfig resolves defaults, the config file, env and flags, then
// validates the result.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, err
	}
	applyConfigFlagOverrides(cmd, v, map[string]string{
		"document": "document",
		"style":    "render.style",
		"width":    "render.word_wrap",
	})
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return v, nil
}

// runViewer opens the interactive viewer on a terminal and prints the
// rendered document otherwise.
func runViewer(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)
	doc, status, err := loadDocument(app)
	if err != nil {
		return err
	}
	out, isFile := cmd.OutOrStdout().(*os.File)
	if !isFile || !term.IsTerminal(int(out.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		app.User.Performed(user.ActReadDocument)
		return renderDocument(cmd, app, doc)
	}
	app.Log.Info("viewer opened", zap.String("document", app.Cfg.GetString("document")))
	return tui.RunViewer(cmd.Context(), tui.ViewerOptions{
		User:      app.User,
		Title:     app.Cfg.GetString("document"),
		Document:  doc,
		Markdown:  markdownOptions(cmd, app),
		ReviewURL: app.Cfg.GetString("review.url"),
		Status:    status,
		Log:       app.Log,
	})
}

// loadDocument reads the configured document and notes whether it changed
// since the previous run.
func loadDocument(app *wire.App) ([]byte, string, error) {
	name := app.Cfg.GetString("document")
	doc, err := assets.Document(name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return nil, "", fmt.Errorf("%w (available: %v)", err, assets.Documents())
		}
		return nil, "", err
	}
	status := ""
	if app.User.NoteDocument(assets.Digest(doc)) {
		status = "document updated"
	}
	return doc, status, nil
}

func lookupApp(cmd *cobra.Command) (*wire.App, bool) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, false
	}
	app, ok := ctx.Value(appKey).(*wire.App)
	return app, ok
}

func getApp(cmd *cobra.Command) *wire.App {
	app, ok := lookupApp(cmd)
	if !ok {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return app
}
