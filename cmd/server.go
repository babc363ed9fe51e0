package cmd

import (
	"course-studio/config"
	server2 "course-studio/server"
	"github.com/spf13/cobra"
)

func server(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "start http server and asset cleanup consumer",
		Run: func(cmd *cobra.Command, args []string) {
			server2.RunHttp(config)
		},
	}
}
