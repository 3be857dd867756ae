package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go-gig-router/internal/classifier"
	"go-gig-router/internal/models"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run the filter and categorizer on a title and description",
		Example: `  jobctl classify --title "React Frontend Developer" --description "Build UI with react and tailwind"
  jobctl classify -o json --title "Web Scraper needed" --description "automate data extraction"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(); err != nil {
				return err
			}
			if title == "" {
				return errors.New("--title is required")
			}
			_, cls, err := loadClassifier()
			if err != nil {
				return err
			}

			d := cls.Evaluate(title, description)
			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printDecision(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "job title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "job description")
	return cmd
}

func printDecision(w io.Writer, d classifier.Decision) {
	if d.Rejected {
		fmt.Fprintf(w, "🚫 rejected (%s: %q)\n", d.Topic, d.Term)
		return
	}

	fmt.Fprint(w, "✅ categories:")
	for _, c := range d.Categories {
		fmt.Fprintf(w, " %s %s", c.Emoji(), c)
	}
	fmt.Fprintf(w, "\n   rule: %s\n", d.Rule)

	var scored []models.Category
	for _, c := range models.Categories {
		if d.Scores[c] > 0 {
			scored = append(scored, c)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return d.Scores[scored[i]] > d.Scores[scored[j]] })
	for _, c := range scored {
		fmt.Fprintf(w, "   %-10s %d\n", c, d.Scores[c])
	}
}
