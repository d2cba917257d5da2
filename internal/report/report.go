// Package report turns cleaned inxi output into a structured SystemReport.
// Parsing is heuristic and never fails; only the assembler can return an
// error, and only when the capture timestamp is unusable.
package report

// SystemReport is one parsed capture. Sections keep the order in which the
// tool printed them.
type SystemReport struct {
	Timestamp uint64    `json:"timestamp" yaml:"timestamp"`
	Mode      string    `json:"mode" yaml:"mode"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// Section is a titled block such as "System" or "Graphics".
type Section struct {
	Title   string  `json:"title" yaml:"title"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is a single key/value fact inside a section. Both fields are
// non-empty.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// EntryCount returns the number of entries across all sections.
func (r *SystemReport) EntryCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// Titles returns section titles in report order.
func (r *SystemReport) Titles() []string {
	titles := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}
