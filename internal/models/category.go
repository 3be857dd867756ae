package models

import "fmt"

type Category string

const (
	CategoryFrontend   Category = "frontend"
	CategoryBackend    Category = "backend"
	CategoryFullstack  Category = "fullstack"
	CategoryAutomation Category = "automation"
	CategoryScraping   Category = "scraping"
	CategoryOther      Category = "other"
)

// Categories lists every category in canonical order. Multi-category
// results are always reported in this order.
var Categories = []Category{
	CategoryFrontend,
	CategoryBackend,
	CategoryFullstack,
	CategoryAutomation,
	CategoryScraping,
	CategoryOther,
}

var categoryEmoji = map[Category]string{
	CategoryFrontend:   "🎨",
	CategoryBackend:    "⚙️",
	CategoryFullstack:  "🏗️",
	CategoryAutomation: "🤖",
	CategoryScraping:   "🔍",
	CategoryOther:      "💻",
}

func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return categoryEmoji[CategoryOther]
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a configuration label onto the closed category set.
func ParseCategory(label string) (Category, error) {
	for _, c := range Categories {
		if string(c) == label {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", label)
}
