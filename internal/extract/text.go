package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reSpaceRun = regexp.MustCompile(`\s+`)

// collapseSpace folds whitespace runs to single spaces and trims the ends.
func collapseSpace(s string) string {
	return strings.TrimSpace(reSpaceRun.ReplaceAllString(s, " "))
}

// headRunes returns the first n runes of s. PDF text is counted in runes, not
// bytes, so Chinese documents get the same window as English ones.
func headRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// tailRunes returns the last n runes of s.
func tailRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	total := utf8.RuneCountInString(s)
	if n >= total {
		return s
	}
	skip := total - n
	for i := range s {
		if skip == 0 {
			return s[i:]
		}
		skip--
	}
	return s
}

// sliceRunes returns the rune range [from, to) of s, clamping both ends.
func sliceRunes(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return ""
	}
	start, end := len(s), len(s)
	idx := 0
	for i := range s {
		if idx == from {
			start = i
		}
		if idx == to {
			end = i
			break
		}
		idx++
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

// tailLines returns the last n lines of s joined back with newlines.
func tailLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// runeLen is the character count used by all length thresholds.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// lenBetween builds a validity predicate accepting values whose rune length
// lies in [min, max].
func lenBetween(min, max int) func(string) bool {
	return func(s string) bool {
		n := runeLen(s)
		return n >= min && n <= max
	}
}

// truncateRunes cuts s to at most n runes, appending "..." when cut.
func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return headRunes(s, n-3) + "..."
}

// hanCount counts Han characters in s.
func hanCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			count++
		}
	}
	return count
}

// followedByDigit reports whether the first non-whitespace rune of s after
// pos is an ASCII digit. Used in place of a negative lookahead, which the
// regexp engine does not support.
func followedByDigit(s string, pos int) bool {
	if pos < 0 {
		return false
	}
	for _, r := range s[pos:] {
		if unicode.IsSpace(r) {
			continue
		}
		return r >= '0' && r <= '9'
	}
	return false
}
