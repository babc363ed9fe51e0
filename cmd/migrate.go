package cmd

import (
	"course-studio/config"
	"course-studio/constant"
	"course-studio/repository"
	server2 "course-studio/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func migrate(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server2.SetupLogger(config)
			repo, err := repository.NewRepo(config.DB, config.App.Environment == constant.EnvironmentDevelop.String())
			if err != nil {
				return err
			}
			if err := repo.Migrate(ctx); err != nil {
				return err
			}
			zerolog.Ctx(ctx).Info().Msg("schema migrated")
			return nil
		},
	}
}
