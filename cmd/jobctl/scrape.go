package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-gig-router/internal/browser"
	"go-gig-router/internal/logging"
	"go-gig-router/internal/models"
	"go-gig-router/internal/poller"
	"go-gig-router/internal/scraper/upwork"
	"go-gig-router/internal/state"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// printDispatcher stands in for Telegram during a dry run.
type printDispatcher struct {
	w io.Writer
}

func (d printDispatcher) SendPosting(_ context.Context, category models.Category, p models.Posting) error {
	_, err := fmt.Fprintf(d.w, "  -> %s %s: %s (%s)\n", category.Emoji(), category, p.Title, p.ShortID())
	return err
}

func (d printDispatcher) ReportError(_ context.Context, err error) error {
	_, werr := fmt.Fprintf(d.w, "  !! %v\n", err)
	return werr
}

func newScrapeCmd() *cobra.Command {
	var (
		limit    int
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one polling cycle against Upwork and print where each job would go",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(); err != nil {
				return err
			}
			cfg, cls, err := loadClassifier()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("headless") {
				headless = cfg.Headless
			}

			logger, err := logging.NewWithOutputs(cfg.LogLevel, "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session, err := browser.OpenSession(headless, filepath.Join(cfg.CookiesPath, "cookies-upwork.json"), logger)
			if err != nil {
				return fmt.Errorf("init browser: %w", err)
			}
			defer func() {
				if err := session.Close(); err != nil {
					logger.Warn("close browser", zap.Error(err))
				}
			}()

			source, err := upwork.NewUpworkScraper(session.Fetcher, cfg.SearchURL, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			routed := out
			if output == "json" {
				routed = io.Discard
			}
			p := poller.New(source, cls, state.New(), printDispatcher{w: routed}, poller.Options{
				DetailDelay:   cfg.DetailDelay,
				FirstRunLimit: limit,
			}, logger)

			report, err := p.RunOnce(ctx)
			if err != nil {
				return err
			}
			if output == "json" {
				return writeJSON(out, report)
			}
			printReport(out, report)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of postings to fetch")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless (default from config)")
	return cmd
}

func printReport(w io.Writer, r poller.Report) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "\n%s\n   %s | %s proposals | %s\n", res.Posting.Title, res.Posting.Price, res.Posting.ProposalCount, res.Posting.URL)
		if res.Skipped {
			fmt.Fprintln(w, "⏭️  manually filtered")
			continue
		}
		printDecision(w, res.Decision)
	}
	fmt.Fprintf(w, "\nlisted %d, fetched %d, rejected %d, routed %d\n", r.Listed, r.Fetched, r.Rejected, r.Dispatched)
}
