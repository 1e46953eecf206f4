package extract

import (
	"regexp"
	"strings"
)

// Judgment results live in the closing pages. Only the last 15% of the
// document (capped at 5000 runes) is scanned.

var (
	englishOrderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:ORDER|ORDERS|JUDGMENT|CONCLUSION|DISPOSITION)\s*[:.]?\s*\n((?:[^\n]+\n?){2,12})`),
		regexp.MustCompile(`(?is)(?:IT IS ORDERED|I ORDER|THE COURT ORDERS?)\s*[:.]?\s*((?:[^\n]+\n?){1,8})`),
		regexp.MustCompile(`(?is)(?:For (?:these reasons|the foregoing reasons)|Accordingly|Therefore)\s*[,.]?\s*([^\n.]{30,500})`),
		regexp.MustCompile(`(?is)(I (?:make an )?[Oo]rder[^.]*?(?:that|in terms of)[^.]*?[.\n])`),
		regexp.MustCompile(`(?is)(I (?:would )?(?:make|grant|allow|dismiss|refuse)[^.]*?(?:order|application|claim)[^.]*?[.\n])`),
		regexp.MustCompile(`(?is)([Bb]ased on the above[^.]*?[Oo]rder[^.]*?[.\n])`),
		regexp.MustCompile(`(?is)([Ii]n conclusion[^.]*?(?:order|grant|dismiss|allow)[^.]*?[.\n])`),
		regexp.MustCompile(`(?is)([Ff]or the (?:above )?reasons?[^.]*?(?:order|grant|dismiss|allow)[^.]*?[.\n])`),
	}

	englishDecisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)((?:dismiss|grant|refuse|allow|upheld|affirmed).*?(?:application|claim|appeal|action))`),
		regexp.MustCompile(`(?i)((?:Judgment|judgment)\s+(?:be\s+)?entered\s+for.*?)`),
		regexp.MustCompile(`(?i)(I\s+(?:dismiss|grant|order|hold|refuse|allow).*?)`),
		regexp.MustCompile(`(?i)((?:The\s+)?(?:application|appeal|claim)\s+(?:is|shall be)\s+(?:granted|dismissed|refused|allowed).*?)`),
		regexp.MustCompile(`(?i)((?:The\s+)?[Dd]efendants?.*?(?:pay|liable|responsible)[^.]*?(?:costs|damages|compensation)[^.]*?[.\n])`),
		regexp.MustCompile(`(?i)((?:The\s+)?[Pp]laintiffs?.*?(?:entitled|succeed)[^.]*?[.\n])`),
		regexp.MustCompile(`(?i)([Ss]ummary judgment.*?(?:granted|entered|allowed)[^.]*?[.\n])`),
		regexp.MustCompile(`(?i)([Cc]osts.*?(?:assessed|taxed|awarded)[^.]*?[.\n])`),
		regexp.MustCompile(`(?i)([Ii]nterest.*?(?:awarded|granted|payable)[^.]*?[.\n])`),
		regexp.MustCompile(`(?i)([Aa]pplication.*?(?:granted|dismissed|refused|allowed)[^.]*?[.\n])`),
	}

	chineseOrderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:命令|判令|裁定|判決|判决)\s*[：:.]?\s*\n((?:[^\n]+\n?){2,10})`),
		regexp.MustCompile(`(?:本庭|法庭|法院)\s*(?:命令|判令|裁定|判決|判决)\s*([^\n。]{15,400})`),
		regexp.MustCompile(`(?:綜上所述|因此|故此|據此)\s*[，,：:.]*\s*([^\n。]{20,400})`),
	}

	chineseDecisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`((?:批准|拒絕|駁回|允許|准許|不准).*?(?:申請|請求|上訴))`),
		regexp.MustCompile(`((?:勝訴|敗訴|得直|不得直).*?)`),
		regexp.MustCompile(`((?:撤回|撤訴).*?)`),
	}
)

func collectJudgmentSegments(section string, patterns []*regexp.Regexp, minLen, maxLen int, segments []string) []string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(section, 2) {
			clean := cleanAnalysisSegment(m[1])
			if n := runeLen(clean); n >= minLen && n <= maxLen {
				segments = append(segments, clean)
			}
		}
	}
	return segments
}

func combineJudgmentSegments(segments []string, prefixLen, maxLength int) string {
	if len(segments) == 0 {
		return ""
	}
	var unique []string
	for _, segment := range segments {
		duplicate := false
		for _, existing := range unique {
			if segment != "" && existing != "" &&
				headRunes(segment, prefixLen) == headRunes(existing, prefixLen) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, segment)
		}
	}
	if len(unique) > 4 {
		unique = unique[:4]
	}
	result := strings.Join(unique, " | ")
	if runeLen(result) > maxLength {
		result = headRunes(result, maxLength-3) + "..."
	}
	return result
}

// judgmentTail returns the last 15% of the text, no more than 5000 runes.
func judgmentTail(text string) string {
	total := runeLen(text)
	start := maxInt(total*85/100, total-5000)
	return sliceRunes(text, start, total)
}

func extractEnglishJudgmentResult(text string) (string, bool) {
	section := judgmentTail(text)
	if runeLen(section) < 100 {
		return "", false
	}

	var segments []string
	segments = collectJudgmentSegments(section, englishOrderPatterns, 20, 1000, segments)
	segments = collectJudgmentSegments(section, englishDecisionPatterns, 15, 800, segments)

	result := combineJudgmentSegments(segments, 30, 2500)
	return result, result != ""
}

func extractChineseJudgmentResult(text string) (string, bool) {
	section := judgmentTail(text)
	if runeLen(section) < 100 {
		return "", false
	}

	var segments []string
	segments = collectJudgmentSegments(section, chineseOrderPatterns, 10, 800, segments)
	segments = collectJudgmentSegments(section, chineseDecisionPatterns, 8, 600, segments)

	result := combineJudgmentSegments(segments, 20, 2000)
	return result, result != ""
}

func englishJudgmentResultField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "judgment_result",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "tail-decision-scan", Region: RegionFull, Run: extractEnglishJudgmentResult},
		},
	}
}

func chineseJudgmentResultField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "judgment_result",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "tail-decision-scan", Region: RegionFull, Run: extractChineseJudgmentResult},
		},
	}
}
