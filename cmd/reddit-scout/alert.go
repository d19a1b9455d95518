package main

import (
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/nikkaroraa/reddit-scout/pkg/natsutil"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage keyword alerts",
	}

	var keywords, communities []string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a keyword alert",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.registry.Add(keywords, communities)
		}),
	}
	add.Flags().StringSliceVar(&keywords, "keywords", nil, "keywords to match (comma separated)")
	add.Flags().StringSliceVar(&communities, "communities", nil, "communities to watch (comma separated)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all alerts",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.registry.List(), nil
		}),
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Run one check cycle over all enabled alerts",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			matches, err := a.runner.RunAlerts(cmd.Context())
			if err != nil {
				return nil, err
			}
			return map[string]any{"new_matches": len(matches), "matches": matches}, nil
		}),
	}

	enable := &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable an alert",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.registry.SetEnabled(args[0], true)
		}),
	}

	disable := &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable an alert",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.registry.SetEnabled(args[0], false)
		}),
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an alert",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			if err := a.registry.Remove(args[0]); err != nil {
				return nil, err
			}
			return map[string]string{"removed": args[0]}, nil
		}),
	}

	cmd.AddCommand(add, list, check, enable, disable, remove)
	return cmd
}

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run the combined alert + competitor cycle and deliver the report",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			report, err := a.runner.Run(cmd.Context())
			if err != nil {
				return nil, err
			}

			// Optional NATS delivery alongside the stdout JSON document.
			if url := a.settings.NATS.URL; url != "" {
				nc, err := nats.Connect(url)
				if err != nil {
					return nil, err
				}
				defer nc.Close()
				if err := natsutil.Publish(cmd.Context(), nc, a.settings.NATS.Subject, report); err != nil {
					return nil, err
				}
				a.log.Info("notify: published report", "subject", a.settings.NATS.Subject)
			}
			return report, nil
		}),
	}
	return cmd
}
