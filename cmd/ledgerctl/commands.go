package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var owner, flagState string
	cmd := &cobra.Command{
		Use:   "register <vessel-id>",
		Short: "Register a vessel or update its owner and flag state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"vessel_id":  args[0],
				"owner":      owner,
				"flag_state": flagState,
			}
			return opts.client().do(cmd.Context(), http.MethodPost, "/admin/vessels", nil, body, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owning company")
	cmd.Flags().StringVar(&flagState, "flag-state", "", "Flag state code, e.g. PA")
	_ = cmd.MarkFlagRequired("flag-state")
	return cmd
}

func newVesselCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vessel <vessel-id>",
		Short: "Show registration status and flag state of a vessel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.client().do(cmd.Context(), http.MethodGet, "/vessels/"+url.PathEscape(args[0]), nil, nil, cmd.OutOrStdout())
		},
	}
}

func newPortStateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "port-state",
		Short: "Manage the location to port state mapping",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <location> <port-state>",
			Short: "Assign the port state responsible for a location",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				body := map[string]string{"location": args[0], "port_state": args[1]}
				return opts.client().do(cmd.Context(), http.MethodPost, "/admin/port-states", nil, body, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "get [location]",
			Short: "Look up one location, or list every assignment",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var query url.Values
				if len(args) == 1 {
					query = url.Values{"location": {args[0]}}
				}
				return opts.client().do(cmd.Context(), http.MethodGet, "/port-states", query, nil, cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func newRecordCmd(opts *rootOptions) *cobra.Command {
	var (
		sulfur   uint64
		position string
		eca      bool
	)
	cmd := &cobra.Command{
		Use:   "record <vessel-id>",
		Short: "Record an emission reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"vessel_id":      args[0],
				"sulfur_content": sulfur,
				"position":       position,
				"is_eca":         eca,
			}
			return opts.client().do(cmd.Context(), http.MethodPost, "/emissions", nil, body, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Uint64Var(&sulfur, "sulfur", 0, "Sulfur content of the reading")
	cmd.Flags().StringVar(&position, "position", "", "Location label of the reading")
	cmd.Flags().BoolVar(&eca, "eca", false, "Reading was taken inside an Emission Control Area")
	_ = cmd.MarkFlagRequired("sulfur")
	return cmd
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <vessel-id>",
		Short: "List a vessel's readings in recording order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/vessels/" + url.PathEscape(args[0]) + "/emissions"
			return opts.client().do(cmd.Context(), http.MethodGet, path, nil, nil, cmd.OutOrStdout())
		},
	}
}

func newAlertsCmd(opts *rootOptions) *cobra.Command {
	var vesselIDs []string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List compliance alerts, optionally for specific vessels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var query url.Values
			if len(vesselIDs) > 0 {
				query = url.Values{"vessel_id": {strings.Join(vesselIDs, ",")}}
			}
			return opts.client().do(cmd.Context(), http.MethodGet, "/alerts", query, nil, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&vesselIDs, "vessel-id", nil, "Only alerts for these vessels (repeatable)")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var message, flagState, portState string
	cmd := &cobra.Command{
		Use:   "report <vessel-id>",
		Short: "Report a non-compliance alert directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("--message must not be empty")
			}
			body := map[string]string{
				"vessel_id":  args[0],
				"message":    message,
				"flag_state": flagState,
				"port_state": portState,
			}
			return opts.client().do(cmd.Context(), http.MethodPost, "/alerts", nil, body, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "Alert message")
	cmd.Flags().StringVar(&flagState, "flag-state", "", "Flag state recorded on the alert")
	cmd.Flags().StringVar(&portState, "port-state", "", "Port state recorded on the alert")
	return cmd
}
