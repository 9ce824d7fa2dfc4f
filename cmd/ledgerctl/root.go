package main

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type rootOptions struct {
	server     string
	token      string
	adminToken string
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.server, o.token, o.adminToken)
}

// newRootCmd builds the command tree. Connection flags fall back to
// SULFURWATCH_URL, SULFURWATCH_TOKEN and SULFURWATCH_ADMIN_TOKEN.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Sulfur emission ledger client",
		Long:          "ledgerctl registers vessels, assigns port states, records emission readings and inspects compliance alerts on a sulfurwatch server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("SULFURWATCH_URL", defaultServer), "Base URL of the sulfurwatch server")
	flags.StringVar(&opts.token, "token", os.Getenv("SULFURWATCH_TOKEN"), "Bearer token for administrative commands")
	flags.StringVar(&opts.adminToken, "admin-token", os.Getenv("SULFURWATCH_ADMIN_TOKEN"), "Static admin token sent as X-Admin-Token")

	cmd.AddCommand(
		newRegisterCmd(opts),
		newVesselCmd(opts),
		newPortStateCmd(opts),
		newRecordCmd(opts),
		newHistoryCmd(opts),
		newAlertsCmd(opts),
		newReportCmd(opts),
		newTailCmd(),
		newTokenCmd(),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
