package extract

import (
	"regexp"
	"strings"
)

// Trial dates sit on labelled caption lines ("Date of Hearing: 3 May 2023",
// "聆訊日期：2023 年5 月3 日"). The captured line drags page furniture and
// heading spill with it, so most of the work is cleaning.

var (
	englishDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Dates of Hearing\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Date of (?:Decision|Judgment|Trial|Hearing)\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Hearing Date\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Date of (?:Hearing|Decision|Judgment|Trial|Decision on Costs)\s*:?\s*([^\n]+)`),
	}

	chineseDateLabelled = regexp.MustCompile(`(?:聆訊日期|判決日期|判案書日期|審訊日期|開庭日期)\s*[：:︰]\s*([^\n]+)`)

	chineseDateBare = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4}\s*年\s*\d{1,2}\s*月\s*\d{1,2}\s*日)`),
		regexp.MustCompile(`(\d{4}年\d{1,2}月\d{1,2}日)`),
	}

	datePageMarker     = regexp.MustCompile(`-\s*\d+\s*-`)
	dateChinesePage    = regexp.MustCompile(`第\s*\d+\s*[頁页].*`)
	dateTrailingJoin   = regexp.MustCompile(`(?i)\s*(?:and|&|及)\s*$`)
	dateCaptionSpill   = regexp.MustCompile(`(?i)\s*(?:Date of|Before|Hon\.|J\.|in Chambers?).*$`)
	dateHeadingSpill   = regexp.MustCompile(`(?i)\s*(?:Reasons for|DECISION|JUDGMENT|RULING).*$`)
	dateChineseSpill   = regexp.MustCompile(`\s*(?:原告人|被告人|判案書|主審法官).*$`)
	dateFurtherSubs    = regexp.MustCompile(`\s*(?:進一步陳詞日期|最後書面陳詞日期).*$`)
	dateUnderscoreRun  = regexp.MustCompile(`_{5,}.*$`)
	dateBodySpill      = regexp.MustCompile(`(?i)\s*(?:Introduction|This is an application).*$`)
	dateShapedAnywhere = regexp.MustCompile(`\d{1,2}\s+\w+\s+\d{4}|\d{4}\s*年\s*\d{1,2}\s*月\s*\d{1,2}\s*日`)
	datePageAnywhere   = regexp.MustCompile(`(?i)page|[頁页]`)
)

// cleanDateLine strips page markers, joined continuations, and heading
// spill from a captured caption line.
func cleanDateLine(s string) string {
	s = collapseSpace(s)
	s = datePageMarker.ReplaceAllString(s, "")
	s = dateChinesePage.ReplaceAllString(s, "")
	s = dateTrailingJoin.ReplaceAllString(s, "")
	s = dateCaptionSpill.ReplaceAllString(s, "")
	s = dateHeadingSpill.ReplaceAllString(s, "")
	s = dateChineseSpill.ReplaceAllString(s, "")
	s = dateFurtherSubs.ReplaceAllString(s, "")
	s = dateUnderscoreRun.ReplaceAllString(s, "")
	s = dateBodySpill.ReplaceAllString(s, "")
	s = strings.Trim(s, ", \t")

	if runeLen(s) > 150 {
		// Over-captured: keep the first sentence when it is substantial,
		// otherwise cut hard.
		if idx := strings.IndexAny(s, ".。"); idx > 10 {
			s = s[:idx]
		} else {
			s = sliceRunes(s, 0, 150)
		}
		s = strings.TrimSpace(s)
	}
	if datePageAnywhere.MatchString(s) {
		if shaped := dateShapedAnywhere.FindString(s); shaped != "" {
			s = shaped
		}
	}
	return strings.TrimSpace(s)
}

func englishTrialDateField(cfg Config) fieldSpec {
	strategies := make([]Strategy, 0, len(englishDatePatterns))
	names := []string{"dates-of-hearing", "date-of-decision", "hearing-date", "caption-generic"}
	for i, re := range englishDatePatterns {
		strategies = append(strategies, Strategy{
			Name:      names[i],
			Region:    RegionHeader,
			Pattern:   re,
			Group:     1,
			Normalize: cleanDateLine,
			Valid: func(s string) bool {
				return runeLen(s) > 5
			},
		})
	}
	return fieldSpec{field: "trial_date", sentinel: SentinelText, strategies: strategies}
}

func chineseTrialDateField(cfg Config) fieldSpec {
	strategies := []Strategy{
		{
			Name:      "labelled-date",
			Region:    RegionHeader,
			Pattern:   chineseDateLabelled,
			Group:     1,
			Normalize: cleanDateLine,
			Valid: func(s string) bool {
				return runeLen(s) > 3
			},
		},
	}
	bareNames := []string{"bare-date-spaced", "bare-date-compact"}
	for i, re := range chineseDateBare {
		strategies = append(strategies, Strategy{
			Name:      bareNames[i],
			Region:    RegionHeader,
			Pattern:   re,
			Group:     1,
			Normalize: cleanDateLine,
			Valid: func(s string) bool {
				return runeLen(s) > 3
			},
		})
	}
	return fieldSpec{field: "trial_date", sentinel: SentinelText, strategies: strategies}
}
