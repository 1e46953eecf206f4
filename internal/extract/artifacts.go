package extract

import (
	"regexp"
	"strings"
)

// Margin-index cleanup. Some PDF producers leak the alphabetical margin index
// of a judgment into the extracted text as long runs of single-letter lines
// (A, B, C, ...) before the real content. CleanIndexArtifacts strips such a
// run when one is clearly present, while protecting documents whose opening
// lines already carry the court caption.

var reSingleLetterLine = regexp.MustCompile(`^[A-Z]\s*$`)

// Keywords that mark genuine caption content in the opening lines.
var captionKeywords = []string{
	"IN THE HIGH COURT", "IN THE DISTRICT COURT", "ACTION NO", "CIVIL ACTION NO",
	"COURT OF FIRST INSTANCE", "HCA", "DCCJ", "BETWEEN", "PLAINTIFF", "DEFENDANT",
}

// Keywords that mark the start of real content after an index run.
var contentStartKeywords = []string{
	"HCA", "HKCFI", "HIGH COURT", "COURT OF", "BETWEEN", "PLAINTIFF", "DEFENDANT", "ACTION NO",
}

// Keywords expected in the surviving text after cleanup.
var contentCheckKeywords = []string{
	"HIGH COURT", "COURT", "PLAINTIFF", "DEFENDANT", "BETWEEN", "HCA",
}

const (
	indexRunThreshold   = 15 // consecutive single-letter lines that mark an index
	indexRunMinimum     = 10
	looseLetterMinimum  = 30 // single-letter lines within the first 100 lines
	minCleanedRunes     = 200
	minLooseCleanedRune = 500
)

// CleanIndexArtifacts removes a leading margin-index run from extracted PDF
// text. Text without a recognizable index pattern is returned unchanged.
func CleanIndexArtifacts(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")

	// Never touch a document whose opening lines hold the caption.
	early := strings.ToUpper(strings.Join(lines[:minInt(50, len(lines))], "\n"))
	for _, kw := range captionKeywords {
		if strings.Contains(early, kw) {
			return text
		}
	}

	// Look for a run of single-letter lines followed by caption content.
	consecutive, maxRun, contentStart := 0, 0, -1
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if reSingleLetterLine.MatchString(stripped) {
			consecutive++
			if consecutive > maxRun {
				maxRun = consecutive
			}
			continue
		}
		if consecutive == 0 {
			continue
		}
		if maxRun >= indexRunThreshold && containsAnyUpper(stripped, contentStartKeywords) {
			contentStart = i
			break
		}
		// Blank lines inside the run keep the count alive.
		if stripped != "" {
			consecutive = 0
		}
	}

	if maxRun >= indexRunMinimum && contentStart > 0 {
		cleaned := strings.Join(lines[contentStart:], "\n")
		if runeLen(cleaned) > minCleanedRunes && containsAnyUpper(cleaned, contentCheckKeywords) {
			return cleaned
		}
	}

	// Loose pass: when a large share of the opening lines are single letters,
	// restart the text at the first line that looks like content.
	if len(lines) > 50 {
		letters := 0
		for i := 0; i < minInt(100, len(lines)); i++ {
			if reSingleLetterLine.MatchString(strings.TrimSpace(lines[i])) {
				letters++
			}
		}
		if letters > looseLetterMinimum {
			for i, line := range lines {
				if containsAnyUpper(strings.TrimSpace(line), []string{"HCA", "HKCFI", "HIGH COURT", "COURT OF FIRST", "ACTION NO"}) {
					cleaned := strings.Join(lines[i:], "\n")
					if runeLen(cleaned) > minLooseCleanedRune {
						return cleaned
					}
					break
				}
			}
		}
	}

	return text
}

func containsAnyUpper(s string, keywords []string) bool {
	upper := strings.ToUpper(s)
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
