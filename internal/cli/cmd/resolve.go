package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockable/internal/cli"
)

const (
	defaultResolveWidth  = 800
	defaultResolveHeight = 600
)

var (
	resolveWidth  float64
	resolveHeight float64
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <layout.json>",
	Short: "Compute the geometry of a layout snapshot",
	Long: `Resolve a layout snapshot for a container size and print the layout as
JSON: panel rects, dividers and dock anchors. Use - to read from stdin.

Divider and anchor sizes come from the [layout] config section.

Examples:
  dockable resolve work.json
  dockable resolve --width 1920 --height 1080 - < work.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Float64Var(&resolveWidth, "width", defaultResolveWidth, "container width")
	resolveCmd.Flags().Float64Var(&resolveHeight, "height", defaultResolveHeight, "container height")
}

func runResolve(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	snap, err := cli.LoadSnapshotFile(args[0])
	if err != nil {
		return err
	}
	layout, err := cli.ResolveSnapshot(app.Ctx(), snap, resolveWidth, resolveHeight, cli.EngineSettings(app.Config))
	if err != nil {
		return err
	}
	return cli.WriteJSON(cmd.OutOrStdout(), layout)
}
