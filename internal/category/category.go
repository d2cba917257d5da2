// Package category groups report sections into hardware categories for
// display. Grouping is computed on demand and never changes the report.
package category

import (
	"strings"

	"github.com/wattfource/inxidash/internal/report"
)

// General is the label of the catch-all bucket.
const General = "General"

const (
	titleScore = 6
	keyScore   = 2
	valueScore = 1

	// minScore is the lowest best score that still places a section
	// outside General.
	minScore = 2
)

// Category is a labeled view over sections owned by a report.
type Category struct {
	Label    string
	Sections []*report.Section
}

type definition struct {
	label    string
	keywords []string
}

// definitions are in priority order; earlier entries win ties.
var definitions = [...]definition{
	{"CPU", []string{"cpu", "processor", "core", "thread", "cache", "mhz", "ghz"}},
	{"GPU", []string{"gpu", "graphics", "video", "vram", "display", "vulkan", "opengl"}},
	{"Memory", []string{"memory", "ram", "swap", "slot", "dimm", "channel"}},
	{"Motherboard", []string{"machine", "mobo", "motherboard", "board", "bios", "chipset", "firmware"}},
	{"Storage", []string{"drives", "drive", "disk", "storage", "ssd", "hdd", "nvme", "partition"}},
	{"Network", []string{"network", "ethernet", "wifi", "lan", "wireless", "wlan", "if"}},
	{"Power", []string{"power", "volt", "battery", "charging"}},
	{General, nil},
}

// Labels returns every category label in priority order.
func Labels() []string {
	labels := make([]string, len(definitions))
	for i, d := range definitions {
		labels[i] = d.label
	}
	return labels
}

// Categorize assigns each section to its best-scoring category. Empty
// categories are left out and the rest keep priority order.
func Categorize(sections []report.Section) []Category {
	labels := Labels()
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	buckets := make([][]*report.Section, len(labels))
	for i := range sections {
		section := &sections[i]
		idx := index[Classify(section)]
		buckets[idx] = append(buckets[idx], section)
	}

	var out []Category
	for i, b := range buckets {
		if len(b) == 0 {
			continue
		}
		out = append(out, Category{Label: labels[i], Sections: b})
	}
	return out
}

// Classify returns the label a single section would be grouped under.
func Classify(section *report.Section) string {
	if best, score := classify(section); score >= minScore {
		return definitions[best].label
	}
	return General
}

// classify returns the index and score of the first strictly best
// category, or -1 when nothing scored.
func classify(section *report.Section) (int, int) {
	title := strings.ToLower(section.Title)

	keys := make([]string, len(section.Entries))
	values := make([]string, len(section.Entries))
	for i, e := range section.Entries {
		keys[i] = strings.ToLower(e.Key)
		values[i] = strings.ToLower(e.Value)
	}

	best, bestScore := -1, 0
	for i, d := range definitions {
		if d.label == General {
			continue
		}

		score := 0
		for _, kw := range d.keywords {
			if strings.Contains(title, kw) {
				score += titleScore
				break
			}
		}

		for j := range keys {
			for _, kw := range d.keywords {
				if strings.Contains(keys[j], kw) {
					score += keyScore
				}
				if strings.Contains(values[j], kw) {
					score += valueScore
				}
			}
		}

		if score > bestScore {
			best, bestScore = i, score
		}
	}

	return best, bestScore
}
