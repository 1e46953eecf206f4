package extract

import (
	"regexp"
	"sort"
	"strings"
)

// The case_type field is not a label, it is evidence: weighted narrative
// segments (Introduction, Background, relief sought) that the analysis
// stage classifies. Heavier sections win the length budget.

type caseSegment struct {
	content string
	weight  int
}

type weightedPattern struct {
	re     *regexp.Regexp
	weight int
}

var (
	englishCaseSectionPatterns = []weightedPattern{
		{regexp.MustCompile(`(?is)Introduction\s*[:.]?\s*\n((?:[^\n]+\n){3,20})`), 10},
		{regexp.MustCompile(`(?is)(?:BACKGROUND|Background)\s*[:.]?\s*\n((?:[^\n]+\n){5,25})`), 9},
		{regexp.MustCompile(`(?is)(?:FACTS?|Facts?)\s*[:.]?\s*\n((?:[^\n]+\n){3,20})`), 8},
		{regexp.MustCompile(`(?is)(?:This is|These are)\s+(?:an?\s+)?(action|application|proceeding|matter|case|appeal|motion|summons)([^\n.]{20,300})`), 7},
		{regexp.MustCompile(`(?is)(?:The|This)\s+(?:plaintiff|applicant|defendant|appellant)\s+(?:seeks?|applies?|brings?|claims?)\s+([^\n.]{30,400})`), 6},
	}

	englishCaseJudgmentPatterns = []weightedPattern{
		{regexp.MustCompile(`(?is)(?:ORDER|ORDERS|JUDGMENT|HELD|DISPOSITION)\s*[:.]?\s*\n((?:[^\n]+\n){2,15})`), 5},
		{regexp.MustCompile(`(?is)(?:For (?:these reasons|the foregoing reasons)|Accordingly|In (?:conclusion|the result))\s*[,.]?\s*([^\n.]{50,500})`), 4},
	}

	englishCaseKeywords = []string{
		"application", "proceeding", "action", "dispute", "matter",
		"claim", "relief", "judgment", "order",
	}

	chineseCaseSectionPatterns = []weightedPattern{
		{regexp.MustCompile(`(?:背景|事實|案情|簡介)\s*[：:.]?\s*\n((?:[^\n]+\n){3,20})`), 10},
		{regexp.MustCompile(`(?:爭議|問題|焦點|糾紛)\s*[：:.]?\s*\n((?:[^\n]+\n){2,15})`), 9},
		{regexp.MustCompile(`(?:申請人|原告人?)\s*(?:申請|請求|要求|尋求|指稱)\s*([^\n。]{50,500})`), 8},
		{regexp.MustCompile(`(?:本案|該案|此案)\s*(?:涉及|關於|係|為)\s*([^\n。]{30,400})`), 7},
	}

	chineseCaseJudgmentPatterns = []weightedPattern{
		{regexp.MustCompile(`(?:命令|判令|裁定|判決)\s*[：:.]?\s*\n((?:[^\n]+\n){2,15})`), 6},
		{regexp.MustCompile(`(?:綜上所述|因此|故此|據此)\s*[，,]?\s*([^\n。]{30,400})`), 5},
	}

	chineseCaseKeywords = []string{
		"申請", "爭議", "糾紛", "案件", "法庭", "法院", "判決", "命令", "裁定",
	}

	segPageMarker   = regexp.MustCompile(`\s*-\s*\d+\s*-\s*`)
	segUnderscores  = regexp.MustCompile(`\s*_{3,}\s*`)
	segPageTail     = regexp.MustCompile(`(?i)\s*(?:page|頁)\s*\d+.*$`)
	segLeadingNum   = regexp.MustCompile(`^\s*(?:\d+\.\s*)?`)
	segLeadingSep   = regexp.MustCompile(`^[,;.:\s]+`)
	segTrailingDots = regexp.MustCompile(`[.\s]+$`)
)

// cleanAnalysisSegment trims page furniture and paragraph numbering from a
// narrative segment bound for the analysis stage.
func cleanAnalysisSegment(content string) string {
	cleaned := collapseSpace(content)
	cleaned = segPageMarker.ReplaceAllString(cleaned, " ")
	cleaned = segUnderscores.ReplaceAllString(cleaned, " ")
	cleaned = segPageTail.ReplaceAllString(cleaned, "")
	cleaned = segLeadingNum.ReplaceAllString(cleaned, "")
	cleaned = segLeadingSep.ReplaceAllString(cleaned, "")
	cleaned = segTrailingDots.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func collectWeighted(text string, patterns []weightedPattern, minLen, maxLen int, segments []caseSegment) []caseSegment {
	for _, wp := range patterns {
		for _, m := range wp.re.FindAllStringSubmatch(text, 2) {
			clean := cleanAnalysisSegment(m[1])
			if n := runeLen(clean); n >= minLen && n <= maxLen {
				segments = append(segments, caseSegment{content: clean, weight: wp.weight})
			}
		}
	}
	return segments
}

func collectLongParagraphs(text string, keywords []string, fold bool, paraMin, paraMax, cleanMin, cleanMax int, segments []caseSegment) []caseSegment {
	for _, paragraph := range reParagraphSplit.Split(text, -1) {
		n := runeLen(paragraph)
		if n < paraMin || n > paraMax {
			continue
		}
		haystack := paragraph
		if fold {
			haystack = strings.ToLower(paragraph)
		}
		hit := false
		for _, k := range keywords {
			if strings.Contains(haystack, k) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		clean := cleanAnalysisSegment(paragraph)
		if cn := runeLen(clean); cn >= cleanMin && cn <= cleanMax {
			segments = append(segments, caseSegment{content: clean, weight: 2})
			if len(segments) >= 8 {
				break
			}
		}
	}
	return segments
}

// combineCaseSegments orders segments by weight, drops near-duplicates, and
// packs them into the length budget.
func combineCaseSegments(segments []caseSegment, maxLength int) string {
	if len(segments) == 0 {
		return ""
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].weight > segments[j].weight
	})

	var selected []string
	total := 0
	for _, seg := range segments {
		if seg.content == "" {
			continue
		}
		duplicate := false
		for _, existing := range selected {
			if runeLen(seg.content) > 30 && runeLen(existing) > 30 &&
				headRunes(seg.content, 30) == headRunes(existing, 30) {
				duplicate = true
				break
			}
		}
		if duplicate || total+runeLen(seg.content) > maxLength {
			continue
		}
		selected = append(selected, seg.content)
		total += runeLen(seg.content)
		if len(selected) >= 5 {
			break
		}
	}
	if len(selected) == 0 {
		return ""
	}
	result := strings.Join(selected, " | ")
	if runeLen(result) > maxLength {
		result = headRunes(result, maxLength-3) + "..."
	}
	return result
}

const caseTypeInputCap = 80000

func extractEnglishCaseType(text string) (string, bool) {
	text = headRunes(text, caseTypeInputCap)

	var segments []caseSegment
	segments = collectWeighted(text, englishCaseSectionPatterns, 50, 2000, segments)
	segments = collectWeighted(text, englishCaseJudgmentPatterns, 30, 1500, segments)
	segments = collectLongParagraphs(text, englishCaseKeywords, true, 200, 2000, 100, 1500, segments)

	result := combineCaseSegments(segments, 3000)
	return result, result != ""
}

func extractChineseCaseType(text string) (string, bool) {
	text = headRunes(text, caseTypeInputCap)

	var segments []caseSegment
	segments = collectWeighted(text, chineseCaseSectionPatterns, 30, 1500, segments)
	segments = collectWeighted(text, chineseCaseJudgmentPatterns, 20, 1000, segments)
	segments = collectLongParagraphs(text, chineseCaseKeywords, false, 150, 1500, 80, 1200, segments)

	result := combineCaseSegments(segments, 2500)
	return result, result != ""
}

func englishCaseTypeField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "case_type",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "weighted-sections", Region: RegionHeader, Run: extractEnglishCaseType},
		},
	}
}

func chineseCaseTypeField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "case_type",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "weighted-sections", Region: RegionHeader, Run: extractChineseCaseType},
		},
	}
}
