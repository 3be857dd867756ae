package categorizer

import (
	"strings"

	"go-gig-router/internal/models"
)

// Score contributions.
const (
	TitleKeywordWeight       = 10
	TitleExactMatchWeight    = 10
	DescriptionKeywordWeight = 1
	FullstackTitleBoost      = 3
	JSTitleBoost             = 3
)

var fullstackTitlePhrases = []string{"fullstack", "full stack", "full-stack"}

// Scores holds the per-category score of one posting.
type Scores map[models.Category]int

// Result is the outcome of categorizing one posting.
type Result struct {
	Categories []models.Category
	Rule       string
	Scores     Scores
}

// Categorizer assigns categories by keyword scoring. Its keyword table is
// fixed at construction, so one instance can be shared between goroutines.
type Categorizer struct {
	keywords map[models.Category][]string
}

// New builds a categorizer from category -> keywords. Keywords for "other"
// and blank keywords are dropped; the rest are lowercased.
func New(keywords map[models.Category][]string) *Categorizer {
	table := make(map[models.Category][]string, len(keywords))
	for category, words := range keywords {
		if category == models.CategoryOther {
			continue
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			table[category] = append(table[category], w)
		}
	}
	return &Categorizer{keywords: table}
}

// Classify returns the categories a posting belongs to. The result is never
// empty and is ordered like models.Categories.
func (c *Categorizer) Classify(title, description string) []models.Category {
	return c.Categorize(title, description).Categories
}

// Categorize scores the posting and runs the resolution table.
func (c *Categorizer) Categorize(title, description string) Result {
	in := input{
		title: strings.ToLower(title),
		text:  strings.ToLower(title + " " + description),
	}
	in.scores = c.score(in.title, in.text)

	for _, r := range resolution {
		if categories, ok := r.apply(in); ok {
			return Result{Categories: categories, Rule: r.name, Scores: in.scores}
		}
	}
	return Result{Categories: []models.Category{models.CategoryOther}, Rule: "fallback", Scores: in.scores}
}

// Score exposes the raw scores without resolving categories.
func (c *Categorizer) Score(title, description string) Scores {
	return c.score(strings.ToLower(title), strings.ToLower(title+" "+description))
}

func (c *Categorizer) score(title, text string) Scores {
	scores := make(Scores, len(models.Categories))
	for _, category := range models.Categories {
		scores[category] = 0
		for _, kw := range c.keywords[category] {
			if strings.Contains(title, kw) {
				scores[category] += TitleKeywordWeight
				if kw == title {
					scores[category] += TitleExactMatchWeight
				}
			} else if strings.Contains(text, kw) {
				scores[category] += DescriptionKeywordWeight
			}
		}
	}

	for _, phrase := range fullstackTitlePhrases {
		if strings.Contains(title, phrase) {
			scores[models.CategoryFullstack] += FullstackTitleBoost
			break
		}
	}
	if strings.Contains(title, "javascript") {
		scores[models.CategoryFrontend] += JSTitleBoost
	}
	return scores
}

type input struct {
	title  string
	text   string
	scores Scores
}

type rule struct {
	name  string
	apply func(in input) ([]models.Category, bool)
}

// resolution is evaluated top to bottom; the first rule that applies
// decides. The thresholds are not reducible to one formula.
var resolution = []rule{
	{name: "scraping+automation", apply: scrapingAutomationRule},
	{name: "fullstack", apply: fullstackRule},
	{name: "javascript frontend", apply: javascriptRule},
	{name: "highest score", apply: highestScoreRule},
}

// Scraping and automation are the only pair allowed to co-occur.
func scrapingAutomationRule(in input) ([]models.Category, bool) {
	if in.scores[models.CategoryScraping] > 0 && in.scores[models.CategoryAutomation] > 0 {
		return []models.Category{models.CategoryScraping, models.CategoryAutomation}, true
	}
	return nil, false
}

// Fullstack wins when it clears the title threshold, has frontend and
// backend support (or outweighs both together), and neither side is more
// than 1.5x its score.
func fullstackRule(in input) ([]models.Category, bool) {
	fullstack := in.scores[models.CategoryFullstack]
	frontend := in.scores[models.CategoryFrontend]
	backend := in.scores[models.CategoryBackend]

	if fullstack < TitleKeywordWeight+FullstackTitleBoost {
		return nil, false
	}
	hasBothSides := frontend > 0 && backend > 0
	dominant := fullstack > frontend+backend
	if !hasBothSides && !dominant {
		return nil, false
	}
	limit := float64(fullstack) * 1.5
	if float64(frontend) > limit || float64(backend) > limit {
		return nil, false
	}
	return []models.Category{models.CategoryFullstack}, true
}

func javascriptRule(in input) ([]models.Category, bool) {
	frontend := in.scores[models.CategoryFrontend]
	if frontend < TitleKeywordWeight+JSTitleBoost {
		return nil, false
	}
	if !strings.Contains(in.text, "javascript") {
		return nil, false
	}
	if in.scores[models.CategoryFullstack] >= frontend {
		return nil, false
	}
	return []models.Category{models.CategoryFrontend}, true
}

// Every category at the top score is returned; a top score below one title
// hit is not significant and routes to "other".
func highestScoreRule(in input) ([]models.Category, bool) {
	maxScore := 0
	for _, category := range models.Categories {
		if category == models.CategoryOther {
			continue
		}
		if s := in.scores[category]; s > maxScore {
			maxScore = s
		}
	}
	if maxScore < TitleKeywordWeight {
		return []models.Category{models.CategoryOther}, true
	}

	var top []models.Category
	for _, category := range models.Categories {
		if category != models.CategoryOther && in.scores[category] == maxScore {
			top = append(top, category)
		}
	}
	return top, true
}
