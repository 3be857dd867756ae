package filter

import (
	"regexp"
	"sort"
	"strings"
)

// standalone "ai", so "maintain" and "air" pass
var aiRegex = regexp.MustCompile(`\bai\b`)

const aiTopic = "ai"

// Match reports why a posting was rejected. It is informational only.
type Match struct {
	Topic string
	Term  string
}

// Filter rejects postings that mention any forbidden term as a whole word or
// phrase. It holds no mutable state and is safe for concurrent use.
type Filter struct {
	termRegex *regexp.Regexp
	topicOf   map[string]string
}

// New compiles the forbidden-term set (topic -> terms) into a single
// word-boundary alternation. Terms are lowercased; blanks are ignored.
func New(terms map[string][]string) *Filter {
	topics := make([]string, 0, len(terms))
	for topic := range terms {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	topicOf := make(map[string]string)
	for _, topic := range topics {
		for _, term := range terms[topic] {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, exists := topicOf[term]; !exists {
				topicOf[term] = topic
			}
		}
	}

	f := &Filter{topicOf: topicOf}
	if len(topicOf) == 0 {
		return f
	}

	all := make([]string, 0, len(topicOf))
	for term := range topicOf {
		all = append(all, term)
	}
	// longest first so the reported term is the most specific phrase
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) > len(all[j])
		}
		return all[i] < all[j]
	})

	quoted := make([]string, len(all))
	for i, term := range all {
		quoted[i] = regexp.QuoteMeta(term)
	}
	f.termRegex = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return f
}

// IsRejected reports whether the posting mentions a forbidden term.
func (f *Filter) IsRejected(title, description string) bool {
	_, rejected := f.Match(title, description)
	return rejected
}

// Match returns the first forbidden term found in the posting.
func (f *Filter) Match(title, description string) (Match, bool) {
	text := strings.ToLower(title + " " + description)

	if aiRegex.MatchString(text) {
		return Match{Topic: aiTopic, Term: "ai"}, true
	}

	if f.termRegex == nil {
		return Match{}, false
	}
	term := f.termRegex.FindString(text)
	if term == "" {
		return Match{}, false
	}
	return Match{Topic: f.topicOf[term], Term: term}, true
}

// Terms returns the number of distinct forbidden terms.
func (f *Filter) Terms() int {
	return len(f.topicOf)
}
