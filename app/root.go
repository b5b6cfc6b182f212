// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/abrigo-digital/shelter-admin/internal/config"
)

var (
	configPath string // directory holding main.toml

	rootCmd = &cobra.Command{
		Use:   "shelter-admin",
		Short: "Shelter administration with role based access control",
		Long: `shelter-admin serves the administration of an animal shelter:
animals, breeds, campaigns, events, reports and people, managed by staff
accounts with the roles VIEWER, EDITOR and ADMIN.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
