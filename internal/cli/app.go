// Package cli wires the command line front end: configuration, logging and
// the terminal host of the docking engine.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/domain/build"
	"github.com/bnema/dockable/internal/infrastructure/config"
	"github.com/bnema/dockable/internal/logging"
)

const logTimeFormat = "15:04:05"

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	// Manager is nil when the config directory could not be resolved.
	Manager *config.Manager

	// Context with logger
	ctx        context.Context
	logCleanup func()
	logPath    string
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, cfg, loadErr := loadConfig()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: logTimeFormat,
	})
	app := &App{
		Config:  cfg,
		Theme:   styles.NewTheme(cfg),
		Manager: mgr,
		ctx:     logging.WithContext(context.Background(), logger),
	}

	if cfg.Logging.EnableFileLog {
		if _, err := app.EnableFileLogging(); err != nil {
			return nil, err
		}
	}
	if loadErr != nil {
		logging.FromContext(app.ctx).Warn().Err(loadErr).Msg("using default configuration")
	}
	return app, nil
}

// EnableFileLogging sends the app logger to the rotating log file and
// returns its path. Calling it again is a no-op.
func (a *App) EnableFileLogging() (string, error) {
	if a.logPath != "" {
		return a.logPath, nil
	}

	dir := a.Config.Logging.LogDir
	if dir == "" {
		var err error
		if dir, err = config.GetLogDir(); err != nil {
			return "", fmt.Errorf("resolve log dir: %w", err)
		}
	}

	rotator, err := logging.NewLogRotator(logging.RotatorConfig{
		Dir:        dir,
		FileName:   logging.DefaultLogFileName,
		MaxSizeMB:  a.Config.Logging.MaxSizeMB,
		MaxBackups: a.Config.Logging.MaxBackups,
		MaxAgeDays: a.Config.Logging.MaxAge,
		Compress:   a.Config.Logging.Compress,
	})
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(a.Config.Logging.Level),
		Format:     a.Config.Logging.Format,
		TimeFormat: logTimeFormat,
		Output:     rotator,
	})
	a.ctx = logging.WithContext(a.ctx, logger)
	a.logCleanup = func() { _ = rotator.Close() }
	a.logPath = rotator.Path()

	logger.Info().Int("pid", os.Getpid()).Str("version", a.BuildInfo.String()).Msg("file logging enabled")
	return a.logPath, nil
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// LogPath returns the active log file, or "" when logging to stderr.
func (a *App) LogPath() string {
	return a.logPath
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations. Failures fall
// back to the defaults so read-only commands keep working.
func loadConfig() (*config.Manager, *config.Config, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, config.DefaultConfig(), err
	}

	if err := mgr.Load(); err != nil {
		return nil, config.DefaultConfig(), err
	}

	return mgr, mgr.Get(), nil
}
