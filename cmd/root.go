package cmd

import (
	"course-studio/config"
	"github.com/spf13/cobra"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "course-studio",
		Short: "course authoring backend",
	}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(migrate(config))
	rootCmd.AddCommand(seed(config))
	rootCmd.AddCommand(token(config))
	return rootCmd
}
