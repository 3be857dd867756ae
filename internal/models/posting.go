package models

import "strings"

// Posting is a single job listing extracted from the search page and its
// detail page. It is not modified after extraction.
type Posting struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	ProposalCount string `json:"proposal_count,omitempty"`
	Price         string `json:"price,omitempty"`
}

// JobIDFromURL returns the short job id embedded in an Upwork job link
// (the part after "~" up to the next "/"). Links without one return the
// URL unchanged so the id stays unique.
func JobIDFromURL(url string) string {
	_, after, found := strings.Cut(url, "~")
	if !found {
		return url
	}
	id, _, _ := strings.Cut(after, "/")
	if id == "" {
		return url
	}
	return id
}

// ShortID is the job id as shown to readers: at most 12 characters.
func (p Posting) ShortID() string {
	if p.ID == "" || p.ID == p.URL {
		return "Unknown"
	}
	if len(p.ID) > 12 {
		return p.ID[:12] + "..."
	}
	return p.ID
}
