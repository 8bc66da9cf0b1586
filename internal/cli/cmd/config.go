package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockable/internal/cli/styles"
	"github.com/bnema/dockable/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the configuration lives, print the effective values, or write the defaults.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after defaults and DOCKABLE_* environment overrides.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and its JSON schema",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderError(err))
		return nil
	}
	_, statErr := os.Stat(configFile)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderConfigInfo(configFile, statErr == nil))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := config.EncodeConfig(app.Config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	out := cmd.OutOrStdout()

	if err := config.EnsureDirectories(); err != nil {
		return err
	}
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	configFile, err := config.GetConfigFile()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(configFile)
	switch {
	case statErr == nil && !configForce:
		fmt.Fprint(out, renderer.RenderExists(configFile))
	case statErr == nil || errors.Is(statErr, fs.ErrNotExist):
		if err := config.WriteConfigOrdered(config.DefaultConfig(), configFile); err != nil {
			return err
		}
		fmt.Fprint(out, renderer.RenderWritten("defaults", configFile))
	default:
		return statErr
	}

	schemaFile, err := config.GenerateSchemaFile(configDir)
	if err != nil {
		return err
	}
	fmt.Fprint(out, renderer.RenderWritten("schema", schemaFile))
	return nil
}
