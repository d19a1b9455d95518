// Command reddit-scout polls subreddits for pain points, opportunities, and
// competitor mentions, de-duplicating notifications across runs. It is a
// run-to-completion batch tool meant to be invoked periodically by cron; each
// command prints a single JSON document to stdout.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nikkaroraa/reddit-scout/engine/alert"
	"github.com/nikkaroraa/reddit-scout/engine/digest"
	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/engine/lexicon"
	"github.com/nikkaroraa/reddit-scout/engine/notify"
	"github.com/nikkaroraa/reddit-scout/engine/reddit"
	"github.com/nikkaroraa/reddit-scout/engine/scan"
	"github.com/nikkaroraa/reddit-scout/engine/schedule"
	"github.com/nikkaroraa/reddit-scout/engine/sentiment"
	"github.com/nikkaroraa/reddit-scout/engine/signal"
	"github.com/nikkaroraa/reddit-scout/pkg/metrics"
	"github.com/nikkaroraa/reddit-scout/pkg/resilience"
	"github.com/nikkaroraa/reddit-scout/pkg/store"
)

var (
	configPath  string
	showMetrics bool
)

// app holds the wired collaborators shared by all commands.
type app struct {
	settings *Settings
	store    *store.Store
	client   *reddit.Client
	engine   *scan.Engine
	registry *alert.Registry
	checker  *alert.Checker
	builder  *digest.Builder
	tracker  *schedule.Tracker
	runner   *notify.Runner
	metrics  *metrics.Registry
	log      *slog.Logger
}

func newApp() (*app, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	settings, err := loadSettings(configPath)
	if err != nil {
		return nil, err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st, err := store.New(settings.DataDir, log)
	if err != nil {
		return nil, err
	}

	client := reddit.NewClient(reddit.Config{UserAgent: settings.UserAgent})
	scorer := sentiment.NewScorer(lexicon.SentimentLexicon())
	pain := signal.NewMatcher(lexicon.PainCatalog())
	opp := signal.NewMatcher(lexicon.OpportunityCatalog())
	pacer := resilience.NewPacer(settings.requestInterval())
	reg := metrics.New()

	a := &app{
		settings: settings,
		store:    st,
		client:   client,
		metrics:  reg,
		log:      log,
	}
	a.engine = scan.NewEngine(scan.Deps{
		Source:      client,
		Pain:        pain,
		Opportunity: opp,
		Scorer:      scorer,
		Pacer:       pacer,
		Metrics:     reg,
		Logger:      log,
	})
	a.registry = alert.NewRegistry(st)
	a.checker = alert.NewChecker(alert.Deps{
		Source: client,
		Scorer: scorer,
		Pacer:  pacer,
		Logger: log,
		Limit:  settings.Limit,
	})
	a.builder = digest.NewBuilder(digest.Deps{
		Source:      client,
		Pain:        pain,
		Opportunity: opp,
		Scorer:      scorer,
		Pacer:       pacer,
		Logger:      log,
	})
	a.tracker = schedule.NewTracker(st)
	a.runner = &notify.Runner{
		Registry: a.registry,
		Checker:  a.checker,
		Store:    st,
		Competitors: domain.CompetitorConfig{
			Competitors: settings.Competitors.Names,
			Communities: settings.Competitors.Communities,
		},
		SeenCap: settings.SeenCap,
		Logger:  log,
	}
	return a, nil
}

// communitiesOrDefault returns the positional communities or the configured
// default set.
func (a *app) communitiesOrDefault(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return a.settings.Communities
}

// printJSON writes v as the command's single JSON document on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// run wraps a command body: validation failures become a {"error": ...}
// document with exit 0, anything else escapes to the top-level handler.
func run(body func(cmd *cobra.Command, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out, err := body(cmd, args)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return printJSON(map[string]string{"error": verr.Error()})
			}
			return err
		}
		return printJSON(out)
	}
}

// emitMetrics prints the metrics registry to stderr when --metrics is set.
func (a *app) emitMetrics() {
	if showMetrics {
		fmt.Fprint(os.Stderr, a.metrics.Render())
	}
}

var rootCmd = &cobra.Command{
	Use:           "reddit-scout",
	Short:         "Monitor subreddits for pain points, opportunities, and competitor mentions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "scout.yaml", "path to YAML config")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print run metrics to stderr")

	rootCmd.AddCommand(
		newScanCmd(),
		newSearchCmd(),
		newPainCmd(),
		newThreadCmd(),
		newMultiCmd(),
		newCompetitorsCmd(),
		newDigestCmd(),
		newExportCmd(),
		newNotifyCmd(),
		newAlertCmd(),
		newPostCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
