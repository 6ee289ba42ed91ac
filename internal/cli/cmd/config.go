package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the config file location and export the settings schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Long:  `Display the config file path and whether it exists on disk.`,
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the JSON schema for the config file",
	Long: `Print the JSON schema describing every config setting.

With --write, the schema is written next to the config file instead,
where editors with TOML/JSON schema support can pick it up.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&schemaWrite, "write", false, "write the schema into the config directory")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	_, statErr := os.Stat(configFile)
	fmt.Println(renderer.RenderPath(configFile, statErr == nil))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	if schemaWrite {
		path, err := config.GenerateSchemaFile()
		if err != nil {
			fmt.Println(renderer.RenderError(err))
			return nil
		}
		fmt.Println(renderer.RenderSchemaWritten(path))
		return nil
	}

	data, err := config.SchemaJSON()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(string(data))
	return nil
}
