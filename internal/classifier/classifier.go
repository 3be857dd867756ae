// Rejection check first, categorization second.

package classifier

import (
	"go-gig-router/internal/categorizer"
	"go-gig-router/internal/filter"
	"go-gig-router/internal/models"
)

// Decision is either a rejection or a non-empty category list, never both.
type Decision struct {
	Rejected   bool               `json:"rejected"`
	Topic      string             `json:"topic,omitempty"`
	Term       string             `json:"term,omitempty"`
	Categories []models.Category  `json:"categories,omitempty"`
	Rule       string             `json:"rule,omitempty"`
	Scores     categorizer.Scores `json:"scores,omitempty"`
}

type Classifier struct {
	filter      *filter.Filter
	categorizer *categorizer.Categorizer
}

func New(f *filter.Filter, c *categorizer.Categorizer) *Classifier {
	return &Classifier{filter: f, categorizer: c}
}

// NewDefault uses the built-in keyword and forbidden-term tables.
func NewDefault() *Classifier {
	return New(filter.New(filter.DefaultForbiddenTerms()), categorizer.New(categorizer.DefaultKeywords()))
}

func (c *Classifier) Evaluate(title, description string) Decision {
	if m, rejected := c.filter.Match(title, description); rejected {
		return Decision{Rejected: true, Topic: m.Topic, Term: m.Term}
	}

	res := c.categorizer.Categorize(title, description)
	return Decision{
		Categories: res.Categories,
		Rule:       res.Rule,
		Scores:     res.Scores,
	}
}

func (c *Classifier) IsRejected(title, description string) bool {
	return c.filter.IsRejected(title, description)
}

func (c *Classifier) Classify(title, description string) []models.Category {
	return c.categorizer.Classify(title, description)
}
