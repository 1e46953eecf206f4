package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Case numbers head the caption. English actions read "ACTION NO 1812 OF
// 2022" but arrive with OCR damage (split "N O", stray dots, years broken
// across spaces or lines), so the primary strategy is a repairing line scan
// rather than a single expression. Chinese actions use the 年第...號
// convention and are rewritten to a canonical 民事訴訟 form.

var (
	reActionComplete  = regexp.MustCompile(`(?i)^ACTION\s+N\s*O\s*\.?\s*\d+[A-Z]?\s+OF\s+\d{4}`)
	reActionSplitYear = regexp.MustCompile(`(?i)^ACTION\s+N\s*O\s*\.?\s*\d+[A-Z]?\s+OF\s+\d{2,3}\s+\d{1,2}`)
	reSplitYear       = regexp.MustCompile(`(\bOF\s+)(\d{2,3})\s+(\d{1,2})`)
	reActionNO        = regexp.MustCompile(`(?i)ACTION\s+N\s+O\b`)
	reNoDot           = regexp.MustCompile(`(?i)NO\s*\.\s*`)
	reActionNumber    = regexp.MustCompile(`(?i)NO\.?\s*(\d+[A-Z]?)`)
	reActionPartial   = regexp.MustCompile(`(?i)(?:N\s+)?O\s*\.?\s*\d+`)
	reNearbyYear      = regexp.MustCompile(`20[0-9]{2}`)
	reHCASlash        = regexp.MustCompile(`(?i)HCA\s+(\d+[A-Z]?)/(\d{4})`)
)

// repairActionLine fixes the OCR artifacts an ACTION caption line carries.
func repairActionLine(line string) string {
	line = reActionNO.ReplaceAllString(line, "ACTION NO")
	line = reNoDot.ReplaceAllString(line, "NO ")
	return collapseSpace(line)
}

// scanActionLines walks the header lines looking for the ACTION caption,
// repairing it, completing it from the next line, or rebuilding it from a
// nearby year when the caption is torn apart.
func scanActionLines(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(strings.ToUpper(line), "ACTION") {
			continue
		}

		// Complete on its own line, possibly with a split year.
		if reActionComplete.MatchString(line) {
			return repairActionLine(line), true
		}
		if reActionSplitYear.MatchString(line) {
			return repairActionLine(reSplitYear.ReplaceAllString(line, "${1}${2}${3}")), true
		}

		// Torn across two lines.
		if i+1 < len(lines) {
			combined := line + " " + strings.TrimSpace(lines[i+1])
			if reActionComplete.MatchString(combined) {
				return repairActionLine(combined), true
			}
			if reActionSplitYear.MatchString(combined) {
				return repairActionLine(reSplitYear.ReplaceAllString(combined, "${1}${2}${3}")), true
			}
		}

		// Rebuild from the action number plus a year on a neighbouring line.
		if m := reActionNumber.FindStringSubmatch(line); m != nil {
			for j := maxInt(0, i-3); j < minInt(len(lines), i+4); j++ {
				if year := reNearbyYear.FindString(lines[j]); year != "" {
					return fmt.Sprintf("ACTION NO %s OF %s", m[1], year), true
				}
			}
		}

		// Incomplete but numbered: better than nothing.
		if reActionPartial.MatchString(line) {
			return repairActionLine(line), true
		}
	}
	return "", false
}

func englishCaseNumberField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "case_number",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "action-line-scan",
				Region: RegionHeader,
				Run:    scanActionLines,
			},
			{
				Name:   "hca-rewrite",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					m := reHCASlash.FindStringSubmatch(text)
					if m == nil {
						return "", false
					}
					return fmt.Sprintf("ACTION NO %s OF %s", m[1], m[2]), true
				},
			},
		},
	}
}

// Chinese case numbers.

var (
	chineseCaseNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(高院民事訴訟\s*\d+\s*年\s*第\s*\d+\s*號)`),
		regexp.MustCompile(`(民事訴訟案件(?:編號)?\s*\d+\s*年\s*第\s*\d+\s*號)`),
		regexp.MustCompile(`(香港特別行政區高等法院原訟法庭民事訴訟\s*\d+\s*年\s*第\s*\d+\s*號)`),
		regexp.MustCompile(`(民事訴訟\s*\d+\s*年\s*第\s*\d+\s*號)`),
		regexp.MustCompile(`(\d{4}\s*年\s*第\s*\d+\s*號)`),
		regexp.MustCompile(`案件編號\s*[：:]\s*([^\n]+年第[^\n]+號)`),
		regexp.MustCompile(`編號\s*[：:]\s*([^\n]+年第[^\n]+號)`),
	}

	reChineseYearNumber = regexp.MustCompile(`(\d{4})\s*年\s*第\s*(\d+)\s*號`)

	chineseCourtAnchors = []*regexp.Regexp{
		regexp.MustCompile(`香港特別行政區.*?高等法院.*?上訴法庭`),
		regexp.MustCompile(`高等法院.*?原訟法庭`),
		regexp.MustCompile(`民事上訴案件`),
		regexp.MustCompile(`雜項案件`),
	}
	chinesePartyAnchors = []string{"原告人", "被告人", "申請人", "上訴人"}

	chineseMiddlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`民事上訴案件\s*(\d{4})年第\s*([^號]+)\s*號`),
		regexp.MustCompile(`(\d{4})年第\s*([^號]+)\s*號`),
		regexp.MustCompile(`案件編號[：:]\s*([^\n]+)`),
	}

	chineseCaseNumberFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(高院民事訴訟\s*\d+\s*年\s*第\s*\d+[A-Z]?\s*號)`),
		regexp.MustCompile(`((?:高院)?民事訴訟案件(?:編號)?\s*\d+\s*年\s*第\s*\d+[A-Z]?\s*號)`),
		regexp.MustCompile(`(ACTION NO\.?\s*\d+[A-Z]?\s+OF\s+\d{4})`),
		regexp.MustCompile(`(HCA\d{6}[A-Z]?_\d{4})`),
		regexp.MustCompile(`(HCA\s+\d+[A-Z]?/\d{4})`),
	}
)

// standardizeChineseCaseNumber rewrites a matched number to the canonical
// 民事訴訟 YYYY 年第 N 號 spacing.
func standardizeChineseCaseNumber(caseNumber string) string {
	standardized := collapseSpace(caseNumber)
	m := reChineseYearNumber.FindStringSubmatch(standardized)
	if m == nil {
		return standardized
	}
	year, number := m[1], m[2]
	if !strings.Contains(standardized, "民事訴訟") {
		return fmt.Sprintf("民事訴訟 %s 年第 %s 號", year, number)
	}
	return reChineseYearNumber.ReplaceAllString(standardized, year+" 年第 "+number+" 號")
}

// positionedChineseCaseNumber scans the window between the court title and
// the party block, where the number is printed in well-formed captions.
func positionedChineseCaseNumber(text string) (string, bool) {
	courtEnd := 0
	for _, re := range chineseCourtAnchors {
		if loc := re.FindStringIndex(text); loc != nil && loc[1] > courtEnd {
			courtEnd = loc[1]
		}
	}
	if courtEnd == 0 {
		return "", false
	}
	partiesStart := len(text)
	for _, anchor := range chinesePartyAnchors {
		if idx := strings.Index(text[courtEnd:], anchor); idx >= 0 && courtEnd+idx < partiesStart {
			partiesStart = courtEnd + idx
		}
	}
	if partiesStart == len(text) {
		return "", false
	}
	middle := text[courtEnd:partiesStart]
	for _, re := range chineseMiddlePatterns {
		if m := re.FindString(middle); m != "" {
			return collapseSpace(m), true
		}
	}
	return "", false
}

func chineseCaseNumberField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "case_number",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "canonical-forms",
				Region: RegionFull,
				Run: func(text string) (string, bool) {
					for _, re := range chineseCaseNumberPatterns {
						if m := re.FindStringSubmatch(text); m != nil {
							return standardizeChineseCaseNumber(m[1]), true
						}
					}
					return "", false
				},
			},
			{
				Name:   "court-to-parties-window",
				Region: RegionFull,
				Run:    positionedChineseCaseNumber,
			},
			{
				Name:   "header-fallbacks",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					for _, re := range chineseCaseNumberFallbacks {
						if m := re.FindStringSubmatch(text); m != nil {
							return collapseSpace(m[1]), true
						}
					}
					return "", false
				},
			},
		},
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
