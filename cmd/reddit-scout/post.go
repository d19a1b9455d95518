package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Track posts scheduled for manual publication",
	}

	var (
		community string
		title     string
		content   string
		at        string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule a post reminder",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return nil, domain.NewValidationError("at", at, fmt.Errorf("want RFC3339: %w", err))
			}
			return a.tracker.Add(community, title, content, when)
		}),
	}
	add.Flags().StringVar(&community, "community", "", "target community")
	add.Flags().StringVar(&title, "title", "", "post title")
	add.Flags().StringVar(&content, "content", "", "post body")
	add.Flags().StringVar(&at, "at", "", "scheduled time, RFC3339")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all scheduled posts",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.tracker.List(), nil
		}),
	}

	due := &cobra.Command{
		Use:   "due",
		Short: "List pending posts whose scheduled time has passed",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.tracker.DueNow(), nil
		}),
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending post",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.tracker.Cancel(args[0])
		}),
	}

	var url string
	markPosted := &cobra.Command{
		Use:   "mark-posted <id>",
		Short: "Record that a pending post was published",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			return a.tracker.MarkPosted(args[0], url)
		}),
	}
	markPosted.Flags().StringVar(&url, "url", "", "URL of the published post")

	cmd.AddCommand(add, list, due, cancel, markPosted)
	return cmd
}
