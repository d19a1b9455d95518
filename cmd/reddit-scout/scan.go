package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikkaroraa/reddit-scout/engine/digest"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/scan"
	"github.com/nikkaroraa/reddit-scout/pkg/csvutil"
)

// scanFlags are shared by the scan-family commands.
type scanFlags struct {
	limit       int
	sort        string
	window      string
	threshold   int
	noSentiment bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "posts per community (default from config)")
	cmd.Flags().StringVar(&f.sort, "sort", "new", "listing sort: new|hot|top")
	cmd.Flags().StringVar(&f.window, "window", "", "time window for top: hour|day|week|month|year|all")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "trending score threshold")
	cmd.Flags().BoolVar(&f.noSentiment, "no-sentiment", false, "skip sentiment scoring")
}

func (f *scanFlags) options(settings *Settings) scan.Options {
	limit := f.limit
	if limit <= 0 {
		limit = settings.Limit
	}
	threshold := f.threshold
	if threshold <= 0 {
		threshold = settings.ScoreThreshold
	}
	return scan.Options{
		Limit:          limit,
		Sort:           domain.Sort(f.sort),
		Window:         f.window,
		ScoreThreshold: threshold,
		WithSentiment:  !f.noSentiment,
	}
}

func newScanCmd() *cobra.Command {
	var flags scanFlags
	cmd := &cobra.Command{
		Use:   "scan [communities...]",
		Short: "Scan communities for pain points, opportunities, and trending posts",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			return a.engine.Scan(cmd.Context(), a.communitiesOrDefault(args), flags.options(a.settings))
		}),
	}
	flags.register(cmd)
	return cmd
}

func newMultiCmd() *cobra.Command {
	var flags scanFlags
	cmd := &cobra.Command{
		Use:   "multi [communities...]",
		Short: "Scan communities and print only the cross-community aggregates",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			result, err := a.engine.Scan(cmd.Context(), a.communitiesOrDefault(args), flags.options(a.settings))
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"scanned_at":        result.ScannedAt,
				"top_pain_points":   result.TopPainPoints,
				"top_opportunities": result.TopOpportunities,
				"top_trending":      result.TopTrending,
			}, nil
		}),
	}
	flags.register(cmd)
	return cmd
}

func newPainCmd() *cobra.Command {
	var flags scanFlags
	cmd := &cobra.Command{
		Use:   "pain <community>",
		Short: "List pain-point matches for one community",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			result, err := a.engine.Scan(cmd.Context(), args[:1], flags.options(a.settings))
			if err != nil {
				return nil, err
			}
			return result.Communities[0], nil
		}),
	}
	flags.register(cmd)
	return cmd
}

func newSearchCmd() *cobra.Command {
	var flags scanFlags
	cmd := &cobra.Command{
		Use:   "search <query> [communities...]",
		Short: "Search communities for a query, with sentiment annotations",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			return a.engine.Search(cmd.Context(), a.client, a.communitiesOrDefault(args[1:]), args[0], flags.options(a.settings))
		}),
	}
	flags.register(cmd)
	return cmd
}

func newThreadCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "thread <community> <post-id>",
		Short: "Fetch one post with its comment tree flattened depth-first",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			post, comments, err := a.client.Thread(cmd.Context(), args[0], args[1], limit)
			if err != nil {
				return nil, err
			}
			return map[string]any{"post": post, "comments": comments}, nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "max comments to fetch")
	return cmd
}

func newCompetitorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "competitors",
		Short: "Check configured communities for new competitor mentions",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			return a.runner.RunCompetitors(cmd.Context())
		}),
	}
	return cmd
}

func newDigestCmd() *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "digest [communities...]",
		Short: "Build and persist a windowed digest across communities",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			d, err := a.builder.Build(cmd.Context(), a.communitiesOrDefault(args), hours)
			if err != nil {
				return nil, err
			}
			if err := a.store.Save(digest.Key, d); err != nil {
				return nil, err
			}
			return d, nil
		}),
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "window size in hours")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		flags  scanFlags
		out    string
		fields []string
	)
	cmd := &cobra.Command{
		Use:   "export [communities...]",
		Short: "Scan communities and export pain-point matches as CSV",
		RunE: run(func(cmd *cobra.Command, args []string) (any, error) {
			a, err := newApp()
			if err != nil {
				return nil, err
			}
			defer a.emitMetrics()
			result, err := a.engine.Scan(cmd.Context(), a.communitiesOrDefault(args), flags.options(a.settings))
			if err != nil {
				return nil, err
			}

			records := make([]map[string]any, 0, len(result.TopPainPoints))
			for _, m := range result.TopPainPoints {
				rec := map[string]any{
					"id":           m.ID,
					"community":    m.Community,
					"title":        m.Title,
					"score":        m.Score,
					"num_comments": m.NumComments,
					"permalink":    m.Permalink,
					"signals":      strings.Join(m.MatchedSignals, "; "),
				}
				if m.Sentiment != nil {
					rec["sentiment"] = string(m.Sentiment.Label)
				} else {
					rec["sentiment"] = nil
				}
				records = append(records, rec)
			}

			var explicit []string
			if len(fields) > 0 {
				explicit = fields
			}
			csv := csvutil.Render(records, explicit)
			path := filepath.Clean(out)
			if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", path, err)
			}
			return map[string]any{"file": path, "records": len(records)}, nil
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "scout-export.csv", "output CSV path")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "explicit CSV field list (default inferred)")
	return cmd
}
