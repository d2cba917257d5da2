package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattfource/inxidash/internal/report"
)

func section(title string, kv ...string) report.Section {
	s := report.Section{Title: title, Entries: []report.Entry{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Entries = append(s.Entries, report.Entry{Key: kv[i], Value: kv[i+1]})
	}
	return s
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		section report.Section
		want    string
	}{
		{
			name:    "title keyword wins",
			section: section("Graphics", "Device-1", "AMD Navi 22 amdgpu driver"),
			want:    "GPU",
		},
		{
			name:    "no keyword hits",
			section: section("Info", "Uptime", "3h 12m"),
			want:    General,
		},
		{
			name:    "tie goes to earlier category",
			section: section("Misc", "k", "processor video", "k", "processor video"),
			want:    "CPU",
		},
		{
			name:    "below threshold goes to general",
			section: section("Misc", "k", "video"),
			want:    General,
		},
		{
			name:    "key hit reaches threshold",
			section: section("Sensors", "Battery", "charge 55 Wh"),
			want:    "Power",
		},
		{
			name:    "value hits add up",
			section: section("Misc", "k", "drive disk"),
			want:    "Storage",
		},
		{
			name:    "empty section with plain title",
			section: section("Repos"),
			want:    General,
		},
		{
			name:    "title match is case insensitive",
			section: section("MEMORY"),
			want:    "Memory",
		},
		{
			name:    "machine maps to motherboard",
			section: section("Machine", "Type", "Desktop"),
			want:    "Motherboard",
		},
		{
			name:    "network title",
			section: section("Network", "Device-1", "Intel I225-V driver igc"),
			want:    "Network",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(&tc.section))
		})
	}
}

func TestClassifyScoring(t *testing.T) {
	s := section("Misc", "Drive", "ssd nvme")
	idx, score := classify(&s)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "Storage", definitions[idx].label)
	// key "drive" matches "drive" (2); value matches "ssd" and "nvme" (1 each)
	assert.Equal(t, 4, score)

	title := section("Graphics")
	_, score = classify(&title)
	assert.Equal(t, 6, score, "title keywords count once")
}

func TestCategorize(t *testing.T) {
	sections := []report.Section{
		section("Graphics", "Device-1", "AMD Navi 22 amdgpu driver"),
		section("CPU", "Info", "8-core model AMD Ryzen 7"),
		section("Info", "Uptime", "3h 12m"),
		section("Drives", "Local Storage", "total 1.82 TiB"),
		section("Repos"),
	}

	categories := Categorize(sections)

	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"CPU", "GPU", "Storage", General}, labels)

	require.Len(t, categories[3].Sections, 2)
	assert.Equal(t, "Info", categories[3].Sections[0].Title)
	assert.Equal(t, "Repos", categories[3].Sections[1].Title)

	t.Run("categories reference report sections", func(t *testing.T) {
		assert.Same(t, &sections[1], categories[0].Sections[0])
		assert.Same(t, &sections[0], categories[1].Sections[0])
	})

	t.Run("input is not modified", func(t *testing.T) {
		assert.Equal(t, "Graphics", sections[0].Title)
		assert.Len(t, sections[0].Entries, 1)
		assert.Equal(t, "Repos", sections[4].Title)
	})

	t.Run("deterministic", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.Equal(t, categories, Categorize(sections))
		}
	})
}

func TestCategorizeEmpty(t *testing.T) {
	assert.Empty(t, Categorize(nil))
	assert.Empty(t, Categorize([]report.Section{}))
}

func TestCategorizeParsedCapture(t *testing.T) {
	raw := "Machine:\n  Type: Desktop Mobo: ASUSTeK model: ROG STRIX B550-F\n" +
		"Memory:\n  System RAM: total: 32 GiB\n" +
		"Battery:\n  ID-1: hidpp_battery_0 charge: 55%\n" +
		"Swap:\n  ID-1: swap-1 type: zram size: 4 GiB\n"

	categories := Categorize(report.Parse(raw))

	got := map[string][]string{}
	for _, c := range categories {
		for _, s := range c.Sections {
			got[c.Label] = append(got[c.Label], s.Title)
		}
	}

	assert.Equal(t, map[string][]string{
		"Memory":      {"Memory", "Swap"},
		"Motherboard": {"Machine"},
		"Power":       {"Battery"},
	}, got)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"CPU", "GPU", "Memory", "Motherboard", "Storage", "Network", "Power", General}, Labels())
}
