package upwork

import (
	"context"
	"errors"
	"testing"

	"go-gig-router/internal/models"
	"go-gig-router/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchURL = "https://www.upwork.com/nx/search/jobs/?q=scraping&sort=recency"

type fakeFetcher struct {
	pages map[string]string
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	html, ok := f.pages[url]
	if !ok {
		return "", errors.New("unexpected url " + url)
	}
	return html, nil
}

const searchPage = `<html><body><section>
<h2 class="h5 mb-0 mr-2 job-tile-title"><a href="/jobs/React-Developer_~021111/?referrer=search">  React
   Developer </a></h2>
<h2 class="h5 mb-0 mr-2 job-tile-title"><a href="https://www.upwork.com/jobs/Scraper_~022222/">Web Scraper</a></h2>
<h2 class="h5 mb-0 mr-2 job-tile-title">No link here</h2>
<h2 class="h5 mb-0 mr-2 job-tile-title"><a href="/jobs/blank">   </a></h2>
</section></body></html>`

const fixedPricePage = `<html><body>
<div class="break mt-2">  Build a   landing page&nbsp;with React.
   Must know Tailwind. </div>
<ul>
  <li><strong>$500</strong><div class="description">Fixed-price</div></li>
</ul>
<span class="value">10 to 15</span>
</body></html>`

const hourlyPage = `<html><body>
<div class="break mt-2">Scrape product pages daily.</div>
<ul>
  <li><strong>Less than 30 hrs/week</strong><div class="description">Hourly</div></li>
  <li><strong>1-3 months</strong><div class="description">Duration</div></li>
  <li><strong>Intermediate</strong><div class="description">Experience Level</div></li>
  <li><strong>$25.00 - $50.00</strong><div class="description">Hourly</div></li>
</ul>
<span class="value">Less than 5</span>
</body></html>`

const ongoingPage = `<html><body>
<ul>
  <li><strong>Hourly</strong><div class="description">a</div></li>
  <li><strong>x</strong><div class="description">b</div></li>
  <li><strong>y</strong><div class="description">c</div></li>
  <li><strong>Ongoing project</strong><div class="description">d</div></li>
</ul>
</body></html>`

func newTestScraper(t *testing.T, f scraper.Fetcher) *UpworkScraper {
	t.Helper()
	s, err := NewUpworkScraper(f, searchURL, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestUpworkScraper_ListJobs(t *testing.T) {
	s := newTestScraper(t, &fakeFetcher{pages: map[string]string{searchURL: searchPage}})

	listings, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []scraper.Listing{
		{Title: "React Developer", URL: "https://www.upwork.com/jobs/React-Developer_~021111/?referrer=search"},
		{Title: "Web Scraper", URL: "https://www.upwork.com/jobs/Scraper_~022222/"},
	}, listings)
}

func TestUpworkScraper_ListJobs_Empty(t *testing.T) {
	s := newTestScraper(t, &fakeFetcher{pages: map[string]string{searchURL: "<html><title>Upwork</title></html>"}})

	_, err := s.ListJobs(context.Background())
	assert.ErrorIs(t, err, ErrNoListings)
}

func TestUpworkScraper_ListJobs_FetchError(t *testing.T) {
	blocked := errors.New("page blocked")
	s := newTestScraper(t, &fakeFetcher{err: blocked})

	_, err := s.ListJobs(context.Background())
	assert.ErrorIs(t, err, blocked)
}

func TestUpworkScraper_FetchDetails(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		expected models.Posting
	}{
		{
			name: "fixed price",
			page: fixedPricePage,
			expected: models.Posting{
				Description:   "Build a landing page with React. Must know Tailwind.",
				Price:         "$500",
				ProposalCount: "10 to 15",
			},
		},
		{
			name: "hourly range from fourth block",
			page: hourlyPage,
			expected: models.Posting{
				Description:   "Scrape product pages daily.",
				Price:         "$25.00 - $50.00",
				ProposalCount: "Less than 5",
			},
		},
		{
			name: "ongoing project",
			page: ongoingPage,
			expected: models.Posting{
				Description:   "Description not available",
				Price:         "Not Sure",
				ProposalCount: "Not specified",
			},
		},
		{
			name: "nothing extractable",
			page: "<html><body><p>gone</p></body></html>",
			expected: models.Posting{
				Description:   "Description not available",
				Price:         "Not specified",
				ProposalCount: "Not specified",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := scraper.Listing{Title: "Some job", URL: "https://www.upwork.com/jobs/Some-job_~0199/"}
			s := newTestScraper(t, &fakeFetcher{pages: map[string]string{listing.URL: tt.page}})

			p, err := s.FetchDetails(context.Background(), listing)
			require.NoError(t, err)

			tt.expected.ID = "0199"
			tt.expected.Title = "Some job"
			tt.expected.URL = listing.URL
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestNewUpworkScraper_RelativeURL(t *testing.T) {
	_, err := NewUpworkScraper(&fakeFetcher{}, "/nx/search/jobs", zap.NewNop())
	assert.Error(t, err)
}
