package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-gig-router/internal/classifier"
	"go-gig-router/internal/models"
	"go-gig-router/internal/scraper"
	"go-gig-router/internal/state"

	"go.uber.org/zap"
)

// Dispatcher delivers accepted postings, one call per assigned category.
type Dispatcher interface {
	SendPosting(ctx context.Context, category models.Category, p models.Posting) error
	ReportError(ctx context.Context, err error) error
}

type Options struct {
	CheckInterval time.Duration
	DetailDelay   time.Duration
	FirstRunLimit int
}

// Result is what happened to one fetched posting during a cycle.
type Result struct {
	Posting  models.Posting
	Decision classifier.Decision
	// Skipped is set for postings filtered by hand before classification.
	Skipped bool
}

type Report struct {
	Listed     int
	Fetched    int
	Skipped    int
	Rejected   int
	Dispatched int
	Failed     int
	Results    []Result
}

type Poller struct {
	source     scraper.Source
	classifier *classifier.Classifier
	store      *state.Store
	dispatcher Dispatcher
	opts       Options
	logger     *zap.Logger

	trigger chan struct{}
	cycleMu sync.Mutex
}

func New(source scraper.Source, c *classifier.Classifier, store *state.Store, d Dispatcher, opts Options, logger *zap.Logger) *Poller {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = 2 * time.Minute
	}
	if opts.FirstRunLimit <= 0 {
		opts.FirstRunLimit = 5
	}
	return &Poller{
		source:     source,
		classifier: c,
		store:      store,
		dispatcher: d,
		opts:       opts,
		logger:     logger,
		trigger:    make(chan struct{}, 1),
	}
}

// TriggerCheck schedules an immediate cycle that ignores the watermark.
// Calls made while one is already pending are coalesced.
func (p *Poller) TriggerCheck() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run performs a cycle right away and then one per CheckInterval until ctx
// is done. Cycle errors are logged and reported, never returned.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started",
		zap.String("source", p.source.Name()),
		zap.Duration("interval", p.opts.CheckInterval))

	p.runCycle(ctx)

	ticker := time.NewTicker(p.opts.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return nil
		case <-ticker.C:
			p.runCycle(ctx)
		case <-p.trigger:
			p.logger.Info("manual check requested")
			// set here, not in TriggerCheck, so a cycle already in flight
			// cannot clear it
			p.store.ForceFullCheck()
			p.runCycle(ctx)
		}
	}
}

func (p *Poller) runCycle(ctx context.Context) {
	start := time.Now()
	report, err := p.RunOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("job check failed", zap.Error(err))
		if rerr := p.dispatcher.ReportError(ctx, err); rerr != nil {
			p.logger.Warn("failed to report error", zap.Error(rerr))
		}
		return
	}
	p.logger.Info("job check finished",
		zap.Int("listed", report.Listed),
		zap.Int("fetched", report.Fetched),
		zap.Int("rejected", report.Rejected),
		zap.Int("dispatched", report.Dispatched),
		zap.Int("failed", report.Failed),
		zap.Duration("took", time.Since(start)))
}

// RunOnce performs a single cycle: list, fetch new postings, classify and
// dispatch them, then move the watermark.
func (p *Poller) RunOnce(ctx context.Context) (Report, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	listings, err := p.source.ListJobs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list %s jobs: %w", p.source.Name(), err)
	}

	report := Report{Listed: len(listings)}
	candidates, limit := p.selectNew(listings)
	for _, l := range candidates {
		if limit > 0 && report.Fetched >= limit {
			p.logger.Info("first run limit reached", zap.Int("limit", limit))
			break
		}
		if report.Fetched > 0 {
			if err := sleep(ctx, p.opts.DetailDelay); err != nil {
				return report, err
			}
		}

		posting, err := p.source.FetchDetails(ctx, l)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			p.logger.Error("failed to fetch job details",
				zap.String("title", l.Title),
				zap.String("url", l.URL),
				zap.Error(err))
			continue
		}
		report.Fetched++
		p.store.Remember(posting)

		report.Results = append(report.Results, p.process(ctx, posting, &report))
	}

	newest := ""
	if len(listings) > 0 {
		newest = listings[0].Title
	}
	p.store.CompleteCycle(newest, report.Fetched)
	return report, nil
}

// selectNew returns the listings a cycle should consider and how many
// postings it may fetch from them (0 means no limit). A first run ignores
// the watermark but stops after FirstRunLimit postings; later runs stop at
// the last seen title.
func (p *Poller) selectNew(listings []scraper.Listing) ([]scraper.Listing, int) {
	lastTitle, firstRun := p.store.Watermark()
	if firstRun {
		return listings, p.opts.FirstRunLimit
	}
	for i, l := range listings {
		if l.Title == lastTitle {
			p.logger.Info("reached previously seen job", zap.String("title", l.Title))
			return listings[:i], 0
		}
	}
	return listings, 0
}
