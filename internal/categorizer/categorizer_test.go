package categorizer

import (
	"sync"
	"testing"

	"go-gig-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizer_Classify(t *testing.T) {
	c := New(DefaultKeywords())

	tests := []struct {
		name        string
		title       string
		description string
		expected    []models.Category
		rule        string
	}{
		{
			name:        "frontend by title and description",
			title:       "React Frontend Developer",
			description: "Build UI with react and tailwind",
			expected:    []models.Category{models.CategoryFrontend},
			rule:        "highest score",
		},
		{
			name:        "fullstack with both sides present",
			title:       "Full Stack Developer (React + Node)",
			description: "build full stack app",
			expected:    []models.Category{models.CategoryFullstack},
			rule:        "fullstack",
		},
		{
			name:        "fullstack dominant without either side",
			title:       "WordPress full stack",
			expected:    []models.Category{models.CategoryFullstack},
			rule:        "fullstack",
		},
		{
			name:        "scraping and automation overlap",
			title:       "Web Scraper needed",
			description: "automate data extraction and scraping workflow",
			expected:    []models.Category{models.CategoryScraping, models.CategoryAutomation},
			rule:        "scraping+automation",
		},
		{
			name:     "overlap takes precedence over fullstack",
			title:    "Full Stack bot scraper",
			expected: []models.Category{models.CategoryScraping, models.CategoryAutomation},
			rule:     "scraping+automation",
		},
		{
			name:        "javascript frontend override beats tie",
			title:       "JavaScript Developer",
			description: "Write javascript for our backend api and database",
			expected:    []models.Category{models.CategoryFrontend},
			rule:        "javascript frontend",
		},
		{
			name:     "fullstack outweighed by frontend",
			title:    "Fullstack React Redux Next.js Tailwind TypeScript API",
			expected: []models.Category{models.CategoryFrontend},
			rule:     "highest score",
		},
		{
			name:        "no keywords",
			title:       "Logo needed",
			description: "design a logo for my brand",
			expected:    []models.Category{models.CategoryOther},
			rule:        "highest score",
		},
		{
			name:        "description only is not significant",
			title:       "Landing tweaks",
			description: "need responsive ui fixes",
			expected:    []models.Category{models.CategoryOther},
			rule:        "highest score",
		},
		{
			name:     "empty posting",
			expected: []models.Category{models.CategoryOther},
			rule:     "highest score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Categorize(tt.title, tt.description)
			assert.Equal(t, tt.expected, res.Categories)
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.expected, c.Classify(tt.title, tt.description))
		})
	}
}

func TestCategorizer_Score(t *testing.T) {
	c := New(DefaultKeywords())

	scores := c.Score("Full Stack Developer (React + Node)", "build full stack app")
	assert.Equal(t, 23, scores[models.CategoryFullstack])
	assert.Equal(t, 11, scores[models.CategoryFrontend])
	assert.Equal(t, 10, scores[models.CategoryBackend])
	assert.Equal(t, 0, scores[models.CategoryOther])

	scores = c.Score("Web Scraper needed", "automate data extraction and scraping workflow")
	assert.Equal(t, 12, scores[models.CategoryScraping])
	assert.Equal(t, 1, scores[models.CategoryAutomation])

	scores = c.Score("JavaScript Developer", "")
	assert.Equal(t, TitleKeywordWeight+JSTitleBoost, scores[models.CategoryFrontend])
}

func TestCategorizer_ExactTitleBonus(t *testing.T) {
	c := New(DefaultKeywords())

	assert.Equal(t, TitleKeywordWeight+TitleExactMatchWeight, c.Score("Scraping", "")[models.CategoryScraping])
	assert.Equal(t, TitleKeywordWeight, c.Score("Scraping job", "")[models.CategoryScraping])
	assert.Equal(t, []models.Category{models.CategoryScraping}, c.Classify("Scraping", ""))
}

func TestCategorizer_TitleHitIsNotAlsoCountedInDescription(t *testing.T) {
	c := New(map[models.Category][]string{
		models.CategoryFrontend: {"React"},
	})

	assert.Equal(t, TitleKeywordWeight, c.Score("react dev", "react react")[models.CategoryFrontend])
	assert.Equal(t, DescriptionKeywordWeight, c.Score("dev", "react")[models.CategoryFrontend])
}

func TestCategorizer_TiesAreKept(t *testing.T) {
	c := New(map[models.Category][]string{
		models.CategoryFrontend: {"alpha"},
		models.CategoryBackend:  {"beta"},
		models.CategoryOther:    {"alpha", "beta"},
	})

	res := c.Categorize("alpha beta", "")
	assert.Equal(t, []models.Category{models.CategoryFrontend, models.CategoryBackend}, res.Categories)
	assert.Equal(t, 0, res.Scores[models.CategoryOther])
}

func TestCategorizer_NeverEmpty(t *testing.T) {
	c := New(DefaultKeywords())
	inputs := [][2]string{
		{"", ""},
		{"   ", "\n"},
		{"Python Django REST API", "postgresql and redis"},
		{"Landing page in Webflow", ""},
		{"Telegram bot", "python script"},
		{"Shopify theme", "liquid templates"},
	}

	for _, in := range inputs {
		got := c.Classify(in[0], in[1])
		require.NotEmpty(t, got, in[0])
		for _, cat := range got {
			_, err := models.ParseCategory(string(cat))
			assert.NoError(t, err)
		}
	}
}

func TestCategorizer_Idempotent(t *testing.T) {
	c := New(DefaultKeywords())

	first := c.Categorize("Full Stack Developer (React + Node)", "build full stack app")
	second := c.Categorize("Full Stack Developer (React + Node)", "build full stack app")
	assert.Equal(t, first, second)
}

func TestCategorizer_ConcurrentUse(t *testing.T) {
	c := New(DefaultKeywords())
	want := c.Classify("React Frontend Developer", "Build UI with react and tailwind")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.Classify("React Frontend Developer", "Build UI with react and tailwind"))
		}()
	}
	wg.Wait()
}
