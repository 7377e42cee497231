package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bityantriki/autoconc/internal/config"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage autoconc configuration",
	Long: `Manage autoconc configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (AUTOCONC_*)
  2. Project config (.autoconc/config.yml)
  3. User config (~/.config/autoconc/config.yml)
  4. Built-in defaults`,
	Example: `  # Show current configuration
  autoconc config show

  # Create a commented project config
  autoconc config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(e.cfg)
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "encoding configuration")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config to .autoconc/config.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectConfigPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return errors.NewArgumentError(
				fmt.Sprintf("%s already exists", path),
				"Pass --force to overwrite it",
			)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.WrapWithMessage(err, errors.Configuration, "creating config directory")
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Configuration, "writing "+path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
