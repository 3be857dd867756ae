package upwork

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go-gig-router/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const (
	listingSelector     = "h2.job-tile-title"
	descriptionSelector = "div.break.mt-2"
	priceAnchorSelector = ".description"
	proposalsSelector   = ".value"

	noDescription = "Description not available"
	notSpecified  = "Not specified"
	notSure       = "Not Sure"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// cleanText folds compatibility characters (non-breaking spaces, ligatures)
// and collapses whitespace runs.
func cleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

type details struct {
	Description string
	Price       string
	Proposals   string
}

func parseListings(html string, base *url.URL) ([]scraper.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var listings []scraper.Listing
	doc.Find(listingSelector).Each(func(_ int, tile *goquery.Selection) {
		a := tile.Find("a").First()
		if a.Length() == 0 {
			return
		}
		href, ok := a.Attr("href")
		title := cleanText(a.Text())
		if !ok || href == "" || title == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		listings = append(listings, scraper.Listing{
			Title: title,
			URL:   base.ResolveReference(ref).String(),
		})
	})
	return listings, nil
}

func parseDetails(html string) (details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details{}, fmt.Errorf("parse job page: %w", err)
	}

	d := details{
		Description: noDescription,
		Price:       notSpecified,
		Proposals:   notSpecified,
	}

	if desc := doc.Find(descriptionSelector).First(); desc.Length() > 0 {
		d.Description = cleanText(desc.Text())
	}

	d.Price = parsePrice(doc)

	if proposals := doc.Find(proposalsSelector).First(); proposals.Length() > 0 {
		if text := cleanText(proposals.Text()); text != "" {
			d.Proposals = text
		}
	}
	return d, nil
}

// The budget sits in the element right before the first ".description"
// block. Hourly postings put a label there instead; their range is before
// the fourth block.
func parsePrice(doc *goquery.Document) string {
	anchors := doc.Find(priceAnchorSelector)
	if anchors.Length() == 0 {
		return notSpecified
	}
	prev := anchors.Eq(0).Prev()
	if prev.Length() == 0 {
		return notSpecified
	}

	price := cleanText(prev.Text())
	if !strings.HasPrefix(price, "$") && anchors.Length() > 3 {
		if alt := anchors.Eq(3).Prev(); alt.Length() > 0 {
			price = cleanText(alt.Text())
		}
		if price == "Ongoing project" || price == "Complex project" {
			price = notSure
		}
	}
	if price == "" {
		return notSpecified
	}
	return price
}
