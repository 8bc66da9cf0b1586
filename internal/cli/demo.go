package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockable/internal/cli/model"
	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/domain/entity"
	"github.com/bnema/dockable/internal/infrastructure/config"
	"github.com/bnema/dockable/internal/logging"
	"github.com/bnema/dockable/internal/ui/mainloop"
)

// DemoOptions configures the terminal demo.
type DemoOptions struct {
	// LayoutFile overrides [demo] layout_file.
	LayoutFile string
	// Watch applies config file changes while the demo runs.
	Watch bool
}

// RunDemo hosts a docking engine in the terminal until the user quits or
// the process is terminated. Logs go to the rotating log file since the
// terminal belongs to the demo.
func RunDemo(app *App, opts DemoOptions) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if _, err := app.EnableFileLogging(); err != nil {
		return err
	}

	ctx := logging.WithComponent(app.Ctx(), "demo")
	logger := logging.FromContext(ctx)
	defer logging.RecoverPanic(logger)

	snap, err := demoLayout(app.Config, opts.LayoutFile)
	if err != nil {
		return err
	}

	m, err := model.NewDockModel(ctx, app.Theme, model.DockModelConfig{
		Settings:   DemoSettings(app.Config),
		CellWidth:  app.Config.Demo.CellWidth,
		CellHeight: app.Config.Demo.CellHeight,
		Layout:     snap,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if opts.Watch && app.Manager != nil {
		engine := m.Engine()
		// fsnotify reports one save as several writes.
		reloads := mainloop.NewCoalescer[string](func(fn func()) {
			p.Send(model.TaskMsg(func() tea.Msg {
				fn()
				return nil
			}))
		})
		defer reloads.Destroy()
		app.Manager.OnConfigChange(func(cfg *config.Config) {
			reloads.Post("config", func() {
				engine.ApplySettings(DemoSettings(cfg))
				logger.Debug().Msg("demo settings reloaded")
			})
			p.Send(model.ThemeMsg{Theme: styles.NewTheme(cfg)})
		})
		if err := app.Manager.Watch(); err != nil {
			logger.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		defer logging.RecoverPanic(logger)
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("demo stopped")
		return err
	}
	logger.Info().Msg("demo finished")
	return nil
}

// demoLayout picks the startup layout: the flag, then the config, then the
// built-in default.
func demoLayout(cfg *config.Config, flagPath string) (*entity.LayoutSnapshot, error) {
	path := flagPath
	if path == "" && cfg != nil {
		path = cfg.Demo.LayoutFile
	}
	if path == "" {
		return model.DefaultLayout(), nil
	}
	return LoadSnapshotFile(path)
}
