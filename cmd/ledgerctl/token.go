package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sulfurwatch/internal/admin"
)

// newTokenCmd groups offline helpers for provisioning admin credentials.
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue admin bearer tokens and hash static admin tokens",
	}

	var (
		subject    string
		ttl        time.Duration
		signingKey string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token whose subject is the admin identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if signingKey == "" {
				return fmt.Errorf("--signing-key or JWT_SIGNING_KEY is required")
			}
			token, err := admin.NewTokenValidator(signingKey).Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	issue.Flags().StringVar(&subject, "subject", "admin", "Admin identity carried as the token subject")
	issue.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	issue.Flags().StringVar(&signingKey, "signing-key", os.Getenv("JWT_SIGNING_KEY"), "HS256 signing key shared with the server")

	hash := &cobra.Command{
		Use:   "hash <token>",
		Short: "Print the bcrypt hash to configure as ADMIN_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := admin.HashToken(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), h)
			return err
		},
	}

	cmd.AddCommand(issue, hash)
	return cmd
}
