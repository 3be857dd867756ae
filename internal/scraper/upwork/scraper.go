package upwork

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go-gig-router/internal/models"
	"go-gig-router/internal/scraper"

	"go.uber.org/zap"
)

// ErrNoListings means the search page rendered without any job tiles,
// usually a layout change or a soft block.
var ErrNoListings = errors.New("no job listings on search page")

type UpworkScraper struct {
	fetcher   scraper.Fetcher
	searchURL string
	base      *url.URL
	logger    *zap.Logger
}

func NewUpworkScraper(fetcher scraper.Fetcher, searchURL string, logger *zap.Logger) (*UpworkScraper, error) {
	u, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("search url %q is not absolute", searchURL)
	}
	return &UpworkScraper{
		fetcher:   fetcher,
		searchURL: searchURL,
		base:      &url.URL{Scheme: u.Scheme, Host: u.Host},
		logger:    logger,
	}, nil
}

func (s *UpworkScraper) Name() string {
	return "Upwork"
}

func (s *UpworkScraper) ListJobs(ctx context.Context) ([]scraper.Listing, error) {
	s.logger.Info("fetching job list", zap.String("url", s.searchURL))

	html, err := s.fetcher.Fetch(ctx, s.searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	listings, err := parseListings(html, s.base)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNoListings
	}

	s.logger.Info("found jobs on page",
		zap.Int("count", len(listings)),
		zap.String("newest", listings[0].Title))
	return listings, nil
}

func (s *UpworkScraper) FetchDetails(ctx context.Context, listing scraper.Listing) (models.Posting, error) {
	s.logger.Debug("fetching details", zap.String("url", listing.URL))

	html, err := s.fetcher.Fetch(ctx, listing.URL)
	if err != nil {
		return models.Posting{}, fmt.Errorf("fetch job page: %w", err)
	}

	d, err := parseDetails(html)
	if err != nil {
		return models.Posting{}, err
	}

	return models.Posting{
		ID:            models.JobIDFromURL(listing.URL),
		Title:         listing.Title,
		Description:   d.Description,
		URL:           listing.URL,
		ProposalCount: d.Proposals,
		Price:         d.Price,
	}, nil
}
