package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockable/internal/cli"
)

var (
	demoLayout  string
	demoNoWatch bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Try the docking engine in the terminal",
	Long: `Open an interactive dock in the terminal.

Drag tabs and headers with the mouse to float and dock panels, drag dividers
to resize splits. Press ? for key bindings. Logs are written to the log
directory since the terminal is taken by the demo.

Examples:
  dockable demo                       # built-in layout
  dockable demo --layout work.json    # start from a saved layout`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoLayout, "layout", "l", "", "layout snapshot (JSON) to start from")
	demoCmd.Flags().BoolVar(&demoNoWatch, "no-watch", false, "ignore config file changes while running")
}

func runDemo(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	return cli.RunDemo(app, cli.DemoOptions{
		LayoutFile: demoLayout,
		Watch:      !demoNoWatch,
	})
}
