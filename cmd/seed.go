package cmd

import (
	"course-studio/config"
	"course-studio/constant"
	"course-studio/repository"
	server2 "course-studio/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var defaultCategories = []string{
	"Frontend",
	"Backend",
	"Blockchain",
	"UI/UX",
	"DevOps",
}

func seed(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "insert the default course categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server2.SetupLogger(config)
			repo, err := repository.NewRepo(config.DB, config.App.Environment == constant.EnvironmentDevelop.String())
			if err != nil {
				return err
			}
			if err := repo.CreateCategories(ctx, defaultCategories); err != nil {
				return err
			}
			zerolog.Ctx(ctx).Info().Int("categories", len(defaultCategories)).Msg("categories seeded")
			return nil
		},
	}
}
