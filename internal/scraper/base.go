// Interfaces between the job source and the polling loop

package scraper

import (
	"context"

	"go-gig-router/internal/models"
)

// Listing is one row of the search results page.
type Listing struct {
	Title string
	URL   string
}

// Fetcher returns the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Source is a job board the bot polls.
type Source interface {
	// ListJobs returns the search results, newest first.
	ListJobs(ctx context.Context) ([]Listing, error)

	// FetchDetails loads a listing's detail page and extracts the posting.
	FetchDetails(ctx context.Context, listing Listing) (models.Posting, error)

	//Name is the platform name
	Name() string
}
