// Package cmd provides Cobra CLI commands for dockable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockable/internal/cli"
	"github.com/bnema/dockable/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "dockable",
		Short: "A dockable panel layout engine",
		Long: `Dockable - tabbed panels that split, float and dock.

Panels hold tabs of hosted content. Docked panels form a binary split tree
sized by draggable dividers; floating panels sit on top in z-order. Dragging
a tab or header shows dock anchors; dropping on one docks the panel.

Use 'dockable demo' to try the engine in your terminal, or 'dockable resolve'
to compute the geometry of a saved layout.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.String()
}
