package wire

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mithrel/scalemate/internal/assets"
	"github.com/mithrel/scalemate/internal/config"
	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/logging"
	"github.com/mithrel/scalemate/internal/review"
	"github.com/mithrel/scalemate/internal/settings"
	"github.com/mithrel/scalemate/internal/user"
	"github.com/mithrel/scalemate/internal/version"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       *viper.Viper
	Log       *zap.Logger
	Store     db.Store
	Settings  *settings.Defaults
	User      *user.User
	Scheduler *review.TimerScheduler

	logFile *lumberjack.Logger
	closed  bool
}

// BuildApp wires dependencies from the loaded config. Review invitations
// printed outside the viewer go to out.
func BuildApp(ctx context.Context, v *viper.Viper, out io.Writer) (*App, error) {
	dataDir := config.ResolveDataDir(v)
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	logger, logFile, err := logging.New(logging.Options{
		File:  config.ResolveLogPath(v),
		Level: v.GetString("log.level"),
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	store, err := db.Open(ctx, "sqlite://"+config.ResolveDBPath(v))
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	s := settings.New(ctx, store, logger)
	sched := review.NewTimerScheduler()
	opts := []user.Option{
		user.WithPolicy(PolicyFromConfig(v)),
		user.WithLogger(logger),
		user.WithHelpCatalog(assets.HelpPageNames()),
		user.WithScheduler(sched),
		user.WithRequester(review.WriterRequester{W: out, URL: v.GetString("review.url")}),
	}
	if ver, ok := user.ParseVersion(version.Version); ok {
		opts = append(opts, user.WithAppVersion(ver))
	}
	u := user.New(s, opts...)
	logger.Info("app started", zap.String("version", version.Version), zap.String("data_dir", dataDir))
	if u.NoteLaunch() {
		logger.Info("upgraded", zap.String("version", version.Version))
	}

	return &App{
		Cfg:       v,
		Log:       logger,
		Store:     store,
		Settings:  s,
		User:      u,
		Scheduler: sched,
		logFile:   logFile,
	}, nil
}

// PolicyFromConfig reads the usage.* options.
func PolicyFromConfig(v *viper.Viper) user.Policy {
	return user.Policy{
		SessionSpacing:   config.Duration(v, "usage.session_spacing"),
		ActionsThreshold: v.GetInt("usage.actions_threshold"),
		MinActsForReview: v.GetInt("usage.min_acts_for_review"),
		ReviewSpacing:    config.Duration(v, "usage.review_spacing"),
		ReviewDelay:      config.Duration(v, "usage.review_delay"),
	}
}

// Close waits for a pending review prompt, then releases the store and the
// log file. It is safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	if a.closed {
		return nil
	}
	a.closed = true
	if err := a.Scheduler.Wait(ctx); err != nil {
		a.Log.Warn("pending review prompt dropped", zap.Error(err))
	}
	err := a.Store.Close()
	_ = a.Log.Sync()
	if a.logFile != nil {
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
