package report

import (
	"strings"
	"unicode"
)

const (
	// maxTitleTokens is the most whitespace-separated tokens a title line
	// may have, colon included.
	maxTitleTokens = 3

	// minContinuationIndent is the leading whitespace a wrapped value line
	// carries in inxi output.
	minContinuationIndent = 4
)

// Parse splits clean text into sections. Lines before the first title are
// ignored, blank lines are skipped, and indented continuation lines are
// folded into the previous entry.
func Parse(clean string) []Section {
	sections := []Section{}

	var current *Section
	flush := func() {
		if current != nil {
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, rawLine := range splitLines(clean) {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if title, ok := parseTitle(line); ok {
			flush()
			current = &Section{Title: title, Entries: []Entry{}}
			continue
		}

		if current == nil {
			continue
		}

		if isContinuation(rawLine, line) {
			if n := len(current.Entries); n > 0 {
				last := &current.Entries[n-1]
				last.Value += " " + line
			}
			continue
		}

		if entry, ok := parseEntry(line); ok {
			current.Entries = append(current.Entries, entry)
		}
	}

	flush()
	return sections
}

// splitLines splits on '\n' and drops one trailing '\r' per line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// IsTitle reports whether a trimmed line would start a new section.
func IsTitle(line string) bool {
	_, ok := parseTitle(line)
	return ok
}

// parseTitle matches lines like "System:", "CPU:" or "Swap:".
func parseTitle(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}

	if len(strings.Fields(line)) > maxTitleTokens {
		return "", false
	}

	title := strings.TrimSpace(strings.TrimRight(line, ":"))
	if title == "" {
		return "", false
	}

	for i, r := range title {
		if i == 0 && !unicode.IsUpper(r) {
			return "", false
		}
		if !isTitleRune(r) {
			return "", false
		}
	}

	return title, true
}

func isTitleRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(" -/()+", r)
}

// isContinuation decides from the untrimmed line whether it extends the
// previous entry's value.
func isContinuation(rawLine, trimmed string) bool {
	indent := 0
	for _, r := range rawLine {
		if !unicode.IsSpace(r) {
			break
		}
		indent++
	}
	if indent < minContinuationIndent {
		return false
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return false
	}
	first := fields[0]

	return strings.HasPrefix(first, "(") || isDigits(first) || strings.Contains(first, "=")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// parseEntry extracts a key/value pair, preferring a "key: value" split and
// falling back to "key [(unit)] value..." tokenization.
func parseEntry(line string) (Entry, bool) {
	if k, v, found := strings.Cut(line, ":"); found {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			return Entry{Key: k, Value: v}, true
		}
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Entry{}, false
	}

	key := tokens[0]
	start := 1
	if len(tokens) > 1 && strings.HasPrefix(tokens[1], "(") && strings.HasSuffix(tokens[1], ")") {
		key += " " + tokens[1]
		start = 2
	}

	value := line
	if start < len(tokens) {
		value = strings.Join(tokens[start:], " ")
	}

	return Entry{Key: key, Value: value}, true
}
