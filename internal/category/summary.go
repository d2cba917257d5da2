package category

import (
	"regexp"
	"strings"

	"github.com/wattfource/inxidash/internal/report"
)

const noData = "No matching data in current report."

var (
	usedPattern    = regexp.MustCompile(`(?i)\bused:?\s+([0-9.]+\s*\w+(?:\s+\([^)]+\))?)`)
	totalPattern   = regexp.MustCompile(`(?i)\btotal:?\s+([0-9.]+\s*\w+)`)
	vendorPattern  = regexp.MustCompile(`(?i)\bvendor:?\s+(.+?)\s+model\b`)
	modelPattern   = regexp.MustCompile(`(?i)\bmodel:?\s+(.+?)\s+size\b`)
	sizePattern    = regexp.MustCompile(`(?i)\bsize:?\s+([0-9.]+\s*\w+)`)
	percentPattern = regexp.MustCompile(`\(([0-9.]+%)\)`)
)

// Summary returns a one-line digest of the category for its card header.
func (c Category) Summary() string {
	var entries []*report.Entry
	for _, s := range c.Sections {
		for i := range s.Entries {
			entries = append(entries, &s.Entries[i])
		}
	}
	if len(entries) == 0 {
		return noData
	}

	var parts []string
	switch c.Label {
	case "Memory":
		parts = memorySummary(entries)
	case "CPU":
		parts = values(entries, []string{"model", "processor", "name"}, []string{"core", "thread"}, []string{"speed", "mhz", "ghz"})
	case "Storage":
		parts = storageSummary(entries)
	case "GPU":
		parts = gpuSummary(entries)
	}

	if len(parts) == 0 {
		for i := 0; i < len(entries) && i < 2; i++ {
			parts = append(parts, entries[i].Value)
		}
	}
	return strings.Join(dedupe(parts), " | ")
}

func memorySummary(entries []*report.Entry) []string {
	var parts []string
	if e := find(entries, "total", "memory", "ram"); e != nil {
		if m := totalPattern.FindStringSubmatch(e.Value); m != nil {
			parts = append(parts, "Total: "+m[1])
		} else if fields := strings.Fields(e.Value); len(fields) > 0 {
			parts = append(parts, "Total: "+fields[0])
		}
	}
	if e := find(entries, "used", "available", "active"); e != nil {
		if m := usedPattern.FindStringSubmatch(e.Value); m != nil {
			parts = append(parts, "Used: "+m[1])
		}
	}
	if e := find(entries, "swap", "id-"); e != nil {
		if m := usedPattern.FindStringSubmatch(e.Value); m != nil {
			parts = append(parts, "Swap: "+m[1])
		}
	}
	return parts
}

func storageSummary(entries []*report.Entry) []string {
	var parts []string

	disk := find(entries, "id-", "nvme", "ssd", "/dev/", "model")
	if disk != nil {
		compact := strings.Join(strings.Fields(disk.Value), " ")
		vendor := vendorPattern.FindStringSubmatch(compact)
		model := modelPattern.FindStringSubmatch(compact)
		switch {
		case vendor != nil && model != nil:
			parts = append(parts, vendor[1]+" "+model[1])
		case model != nil:
			parts = append(parts, model[1])
		}
		if size := sizePattern.FindStringSubmatch(compact); size != nil {
			parts = append(parts, size[1])
		}
	}

	if usage := find(entries, "used", "total", "storage", "local"); usage != nil {
		if m := percentPattern.FindStringSubmatch(usage.Value); m != nil {
			parts = append(parts, "Used: "+m[1])
		}
	}

	if health := find(entries, "smart", "temp", "health"); health != nil && health != disk {
		parts = append(parts, health.Value)
	}
	return parts
}

func gpuSummary(entries []*report.Entry) []string {
	var parts []string
	if e := find(entries, "model", "graphics", "card"); e != nil {
		parts = append(parts, e.Value)
	}
	if e := find(entries, "driver"); e != nil {
		parts = append(parts, "Driver: "+e.Value)
	}
	if e := find(entries, "vram", "memory"); e != nil {
		parts = append(parts, "VRAM: "+e.Value)
	}
	return parts
}

// values picks the first matching entry value for each keyword group.
func values(entries []*report.Entry, groups ...[]string) []string {
	var parts []string
	for _, keywords := range groups {
		if e := find(entries, keywords...); e != nil {
			parts = append(parts, e.Value)
		}
	}
	return parts
}

// find returns the first entry whose key or value contains a keyword.
func find(entries []*report.Entry, keywords ...string) *report.Entry {
	for _, e := range entries {
		key, value := strings.ToLower(e.Key), strings.ToLower(e.Value)
		for _, kw := range keywords {
			if strings.Contains(key, kw) || strings.Contains(value, kw) {
				return e
			}
		}
	}
	return nil
}

func dedupe(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	out := parts[:0]
	for _, p := range parts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
