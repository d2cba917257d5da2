// Package ansi removes terminal escape and formatting sequences from captured
// command output so the text can be parsed line by line.
package ansi

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	esc  = '\x1b'
	bell = '\x07'

	// mIRC-style color code used by inxi when IRC output is selected
	colorStart = '\x03'
)

// Strip returns input with CSI/OSC escape sequences, mIRC color and
// formatting codes, and control characters removed. Newline, carriage
// return and tab are kept. Bytes that are not valid UTF-8 are dropped, so
// the result is never longer than the input and removing a control byte
// can never join its neighbours into a new rune.
func Strip(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case r == esc:
			i = skipEscape(input, i+size)
			continue
		case r == colorStart:
			i = skipColor(input, i+size)
			continue
		case isFormatToggle(r):
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r == utf8.RuneError && size == 1:
		case unicode.IsControl(r):
		default:
			b.WriteString(input[i : i+size])
		}
		i += size
	}

	return b.String()
}

// skipEscape consumes the remainder of an escape sequence starting right
// after the ESC character and returns the index of the first byte after it.
func skipEscape(s string, i int) int {
	if i >= len(s) {
		return i
	}

	next, size := utf8.DecodeRuneInString(s[i:])
	switch next {
	case '[':
		i += size
		for i < len(s) {
			r, n := utf8.DecodeRuneInString(s[i:])
			i += n
			if r >= '@' && r <= '~' {
				break
			}
		}
		return i
	case ']':
		i += size
		for i < len(s) {
			r, n := utf8.DecodeRuneInString(s[i:])
			i += n
			if r == bell {
				break
			}
			if r == esc && i < len(s) && s[i] == '\\' {
				i++
				break
			}
		}
		return i
	default:
		// unknown two-byte sequence
		return i + size
	}
}

// skipColor consumes "NN" or "NN,NN" after a color start code.
func skipColor(s string, i int) int {
	i = skipDigits(s, i, 2)
	if i < len(s) && s[i] == ',' {
		i = skipDigits(s, i+1, 2)
	}
	return i
}

func skipDigits(s string, i, max int) int {
	for seen := 0; seen < max && i < len(s) && s[i] >= '0' && s[i] <= '9'; seen++ {
		i++
	}
	return i
}

// isFormatToggle reports mIRC bold, reset, reverse, italic and underline.
func isFormatToggle(r rune) bool {
	switch r {
	case '\x02', '\x0f', '\x16', '\x1d', '\x1f':
		return true
	}
	return false
}
