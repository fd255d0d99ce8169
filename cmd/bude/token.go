package main

import (
	"errors"
	"fmt"
	"time"

	"networkingbude/config"
	"networkingbude/internal/adapters/auth"
	"networkingbude/internal/domain"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var userID, email string
	var admin bool
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Environment == "production" {
				return errors.New("token minting is disabled in production")
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			var roles []string
			if admin {
				roles = append(roles, domain.AdminRole)
			}
			token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(userID, email, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the subject claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().BoolVar(&admin, "admin", false, "add the admin role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
