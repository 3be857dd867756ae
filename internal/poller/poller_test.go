package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-gig-router/internal/classifier"
	"go-gig-router/internal/models"
	"go-gig-router/internal/scraper"
	"go-gig-router/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu       sync.Mutex
	listings []scraper.Listing
	details  map[string]models.Posting
	listErr  error
	fetched  []string
}

func (f *fakeSource) Name() string { return "Fake" }

func (f *fakeSource) ListJobs(context.Context) ([]scraper.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings, nil
}

func (f *fakeSource) FetchDetails(_ context.Context, l scraper.Listing) (models.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, l.Title)
	p, ok := f.details[l.URL]
	if !ok {
		return models.Posting{}, errors.New("detail page failed")
	}
	return p, nil
}

func (f *fakeSource) setListings(l []scraper.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = l
	f.fetched = nil
}

type sent struct {
	Category models.Category
	ID       string
}

type fakeDispatcher struct {
	mu      sync.Mutex
	sent    []sent
	errs    []error
	failFor models.Category
}

func (d *fakeDispatcher) SendPosting(_ context.Context, c models.Category, p models.Posting) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c == d.failFor {
		return errors.New("send failed")
	}
	d.sent = append(d.sent, sent{Category: c, ID: p.ID})
	return nil
}

func (d *fakeDispatcher) ReportError(_ context.Context, err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
	return nil
}

func (d *fakeDispatcher) sentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

func job(id, title, description string) (scraper.Listing, models.Posting) {
	url := "https://www.upwork.com/jobs/x_~" + id + "/"
	return scraper.Listing{Title: title, URL: url}, models.Posting{
		ID: id, Title: title, Description: description, URL: url,
	}
}

func newSource(jobs ...func() (scraper.Listing, models.Posting)) *fakeSource {
	src := &fakeSource{details: map[string]models.Posting{}}
	for _, j := range jobs {
		l, p := j()
		src.listings = append(src.listings, l)
		src.details[l.URL] = p
	}
	return src
}

func mk(id, title, description string) func() (scraper.Listing, models.Posting) {
	return func() (scraper.Listing, models.Posting) { return job(id, title, description) }
}

func newTestPoller(src *fakeSource, d *fakeDispatcher, store *state.Store) *Poller {
	return New(src, classifier.NewDefault(), store, d, Options{
		CheckInterval: time.Hour,
		FirstRunLimit: 5,
	}, zap.NewNop())
}

func TestPoller_RunOnce_ClassifiesAndDispatches(t *testing.T) {
	src := newSource(
		mk("01", "React Frontend Developer", "Build UI with React, Tailwind, and TypeScript"),
		mk("02", "AI chatbot developer", "Build an AI assistant"),
		mk("03", "Web Scraper", "Scrape product data with Python and BeautifulSoup"),
	)
	d := &fakeDispatcher{}
	store := state.New()
	p := newTestPoller(src, d, store)

	report, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Listed)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, []sent{
		{Category: models.CategoryFrontend, ID: "01"},
		{Category: models.CategoryScraping, ID: "03"},
	}, d.sent)

	assert.True(t, store.IsFiltered("02"), "rejected jobs join the filtered set")
	_, cached := store.Posting("01")
	assert.True(t, cached)

	last, firstRun := store.Watermark()
	assert.Equal(t, "React Frontend Developer", last)
	assert.False(t, firstRun)
}

func TestPoller_RunOnce_FirstRunLimit(t *testing.T) {
	var jobs []func() (scraper.Listing, models.Posting)
	for _, id := range []string{"01", "02", "03", "04", "05", "06", "07"} {
		jobs = append(jobs, mk(id, "Scraper "+id, "web scraping"))
	}
	src := newSource(jobs...)
	// a broken detail page does not use up the limit
	delete(src.details, src.listings[1].URL)

	d := &fakeDispatcher{}
	p := newTestPoller(src, d, state.New())

	report, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.Fetched)
	assert.Equal(t, []string{"Scraper 01", "Scraper 02", "Scraper 03", "Scraper 04", "Scraper 05", "Scraper 06"}, src.fetched)
}

func TestPoller_RunOnce_StopsAtWatermark(t *testing.T) {
	src := newSource(mk("01", "Old Scraper", "web scraping"))
	d := &fakeDispatcher{}
	store := state.New()
	p := newTestPoller(src, d, store)

	_, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	newL, newP := job("02", "New Scraper", "web scraping")
	src.details[newL.URL] = newP
	oldL := src.listings[0]
	src.setListings([]scraper.Listing{newL, oldL})

	report, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched)
	assert.Equal(t, []string{"New Scraper"}, src.fetched)

	last, _ := store.Watermark()
	assert.Equal(t, "New Scraper", last)

	// nothing new: watermark and sends unchanged
	src.setListings([]scraper.Listing{newL, oldL})
	report, err = p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Fetched)
	assert.Equal(t, 2, d.sentCount())
}

func TestPoller_RunOnce_SkipsManuallyFiltered(t *testing.T) {
	src := newSource(mk("01", "Web Scraper", "web scraping"))
	d := &fakeDispatcher{}
	store := state.New()
	store.AddFiltered("01")
	p := newTestPoller(src, d, store)

	report, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, d.sent)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Skipped)
}

func TestPoller_RunOnce_DispatchFailureCounted(t *testing.T) {
	src := newSource(mk("01", "Web Scraper", "web scraping"))
	d := &fakeDispatcher{failFor: models.CategoryScraping}
	store := state.New()
	p := newTestPoller(src, d, store)

	report, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, store.Snapshot().Stats.Failed)
}

func TestPoller_RunOnce_ListError(t *testing.T) {
	blocked := errors.New("blocked")
	src := &fakeSource{listErr: blocked}
	store := state.New()
	p := newTestPoller(src, &fakeDispatcher{}, store)

	_, err := p.RunOnce(context.Background())
	assert.ErrorIs(t, err, blocked)

	_, firstRun := store.Watermark()
	assert.True(t, firstRun, "a failed listing does not end the first run")
}

func TestPoller_TriggerCheck_ForcesFullCycle(t *testing.T) {
	src := newSource(mk("01", "Web Scraper", "web scraping"))
	d := &fakeDispatcher{}
	store := state.New()
	p := newTestPoller(src, d, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return d.sentCount() == 1 }, time.Second, 5*time.Millisecond)

	// the watermark would stop at "Web Scraper"; a manual check ignores it
	p.TriggerCheck()
	require.Eventually(t, func() bool { return d.sentCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPoller_Run_ReportsErrors(t *testing.T) {
	src := &fakeSource{listErr: errors.New("blocked")}
	d := &fakeDispatcher{}
	p := newTestPoller(src, d, state.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	require.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.errs) == 1
	}, time.Second, 5*time.Millisecond)
}
