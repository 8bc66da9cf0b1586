package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/infrastructure/config"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:       "schema [config|layout]",
	Short:     "Print a JSON schema",
	Long:      `Print the JSON schema of config.toml (default) or of layout snapshot files.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "layout"},
	RunE:      runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write the schema to a file")
}

func runSchema(cmd *cobra.Command, args []string) error {
	kind := "config"
	if len(args) == 1 {
		kind = args[0]
	}

	var (
		data []byte
		err  error
	)
	if kind == "layout" {
		data, err = config.LayoutSchema()
	} else {
		data, err = config.ConfigSchema()
	}
	if err != nil {
		return err
	}

	if schemaOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(schemaOutput, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	if app := GetApp(); app != nil {
		fmt.Fprint(cmd.OutOrStdout(), styles.NewConfigRenderer(app.Theme).RenderWritten(kind+" schema", schemaOutput))
	}
	return nil
}
