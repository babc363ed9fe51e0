package cmd

import (
	"course-studio/config"
	"course-studio/pkg/auth"
	"fmt"
	"github.com/spf13/cobra"
	"time"
)

func token(config *config.Config) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "issue a signed access token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, err := auth.NewTokenManager(config.Auth.JWTSecret).Generate(args[0], ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
