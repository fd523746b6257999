// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/anighost1/pp-be/internal/config"
)

var (
	cfg        config.Config
	configPath string // directory holding main.toml
)

var rootCmd = &cobra.Command{
	Use:   "pp-be",
	Short: "pp-be is the back-office API of the municipal services panel",
	Long: `pp-be authenticates panel staff, resolves their effective permissions
and serves the navigation menu they are allowed to see.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}
