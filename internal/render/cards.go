package render

import (
	"fmt"
	"strings"

	"github.com/wattfource/inxidash/internal/category"
	"github.com/wattfource/inxidash/internal/report"
)

// card is one category as the templates draw it.
type card struct {
	Label    string
	Summary  string
	Sections []cardSection
	Shown    int
	Total    int
	// CopyText holds every entry of the category, including hidden ones,
	// as "Section / Key: Value" lines.
	CopyText string
}

type cardSection struct {
	Title   string
	Entries []report.Entry
}

// Truncated reports whether the entry limit held entries back.
func (c card) Truncated() bool {
	return c.Shown < c.Total
}

// buildCards turns categories into cards showing at most limit entries
// each. A limit of zero shows everything.
func buildCards(categories []category.Category, limit int) []card {
	cards := make([]card, 0, len(categories))
	for _, c := range categories {
		cd := card{Label: c.Label, Summary: c.Summary()}

		var lines []string
		for _, s := range c.Sections {
			cd.Total += len(s.Entries)
			for _, e := range s.Entries {
				lines = append(lines, fmt.Sprintf("%s / %s: %s", s.Title, e.Key, e.Value))
			}

			if limit > 0 && cd.Shown >= limit {
				continue
			}
			entries := s.Entries
			if limit > 0 && cd.Shown+len(entries) > limit {
				entries = entries[:limit-cd.Shown]
			}
			cd.Shown += len(entries)
			cd.Sections = append(cd.Sections, cardSection{Title: s.Title, Entries: entries})
		}

		cd.CopyText = strings.Join(lines, "\n")
		cards = append(cards, cd)
	}
	return cards
}
