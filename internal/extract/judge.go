package extract

import (
	"regexp"
	"strings"
)

// Judge extraction runs three layers for English documents: titled formats
// (Recorder, Master, Deputy Judge, bracketed signature), the caption
// "Before:" block, and finally the signature block at the end of the
// judgment. Captures are aggressively validated because the loose Before
// pattern will happily grab headings and prepositions.

var (
	judgeSpecialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mr\.?\s+|ms\.?\s+)?recorder\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s*,?\s*sc)?(?:\s+in\s+(?:court|chambers)|\n|$)`),
		regexp.MustCompile(`(?i)master\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+in\s+(?:court|chambers)|\n|$)`),
		regexp.MustCompile(`\(([A-Z][A-Za-z]{2,}(?:\s+[A-Z][A-Za-z]+)*)\s*,?\s*[Ss][Cc]?\)`),
		regexp.MustCompile(`(?i)(?:deputy\s+(?:high\s+court\s+)?judge\s+|dhcj\s+)([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+sc)?(?:\s+in\s+(?:court|chambers)|\n|$)`),
	}

	judgeBeforePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)before:\s*(?:the\s+hon(?:ourable)?\.\s+)?([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+j\.?)?(?:\s+in\s+(?:court|chambers)|\n)`),
		regexp.MustCompile(`(?i)before:\s*(?:deputy\s+(?:high\s+court\s+)?judge\s+)?([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+j\.?)?(?:\s+sitting|\n)`),
		regexp.MustCompile(`(?i)before:\s*([A-Z][A-Za-z]{2,}(?:\s+[A-Z][A-Za-z]+)*(?:\s+j\.?)?)`),
	}

	judgeSignaturePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(deputy\s+(?:high\s+court\s+)?judge\s+[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+sitting|\s+in\s+(?:court|chambers)|\n)`),
		regexp.MustCompile(`(?i)(justice\s+[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+)(?:\s+sitting|\s+in\s+(?:court|chambers)|\n)`),
		regexp.MustCompile(`(?i)(the\s+hon(?:ourable)?\.\s+[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+\s+j\.?)\s`),
		regexp.MustCompile(`(?i)\(([A-Z][A-Za-z]{2,}(?:\s+[A-Z][A-Za-z]+)+)\s*\)\s*(?:deputy\s+high\s+court\s+)?judge\s+of\s+the\s+court`),
		regexp.MustCompile(`(?i)\(([A-Z][A-Za-z]{2,}(?:\s+[A-Z][A-Za-z]+)+)\s*\)\s*recorder\s+of\s+the\s+high\s+court`),
	}

	judgePreInvalid = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Za-z]{1,2}$`),
		regexp.MustCompile(`^\d+$`),
		regexp.MustCompile(`^[,.\s\-_:;]+$`),
		regexp.MustCompile(`(?i)^(?:to|at|in|on|for|and|or|the|of|with|from|by|if|is|as|be|it|he|she|we|they|this|that|these|those)$`),
		regexp.MustCompile(`(?i)^(?:court|chambers|sitting|hearing|judgment|judgement|decision|order|matter|case|action|appeal|application)$`),
		regexp.MustCompile(`(?i)^(?:before|after|during|while|when|where|what|who|how|why)$`),
		regexp.MustCompile(`(?i)^(?:granted|dismissed|allowed|refused|upheld|affirmed|reversed)$`),
		regexp.MustCompile(`(?i)^(?:plaintiff|defendant|applicant|respondent|appellant)$`),
		regexp.MustCompile(`^(?:held|gave|said|found|noted|stated|ordered|directed)$`),
		regexp.MustCompile(`^(?:[0-9]{1,4}|[ivxlc]+)$`),
		regexp.MustCompile(`(?i)^(?:must|shall|should|would|could|may|might|can|will)$`),
	}

	judgeInvalid = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Za-z]{1,2}$`),
		regexp.MustCompile(`^\d+$`),
		regexp.MustCompile(`^[,.\s\-_:;]+$`),
		regexp.MustCompile(`(?i)^(?:to|at|in|on|for|and|or|the|of|with|from|by|if|is|as|be|it|he|she|we|they)$`),
		regexp.MustCompile(`(?i)^(?:court|chambers|sitting|hearing|judgment|judgement|decision|order|matter|case|action|appeal)$`),
		regexp.MustCompile(`(?i)^(?:before|after|during|while|when|where|what|who|how|why|shall|must|would|could)$`),
		regexp.MustCompile(`(?i)^(?:plaintiff|defendant|applicant|respondent|appellant|petitioner)$`),
		regexp.MustCompile(`(?i)^(?:granted|dismissed|allowed|refused|upheld|affirmed|reversed|held|gave|said|found)$`),
		regexp.MustCompile(`^[ivxlc]+$`),
		regexp.MustCompile(`(?i)^(?:less than|more than|between|among|within|without|unless|until|since|because)$`),
		regexp.MustCompile(`(?i)^(?:hearing|trial|motion|summons|application|appeal|judgment)s?$`),
		regexp.MustCompile(`(?i)^(?:inclusive|exclusive|interest|cost|costs|fee|fees)$`),
		regexp.MustCompile(`(?i)^(?:one|two|three|four|five|six|seven|eight|nine|ten|week|month|year|day)s?$`),
	}

	judgeHonJ       = regexp.MustCompile(`(?i)^(?:the\s+)?hon\.?\s+(.+?)\s*j\.?\s*(?:in\s+(?:court|chambers).*)?$`)
	judgeRecorder   = regexp.MustCompile(`(?i)^(?:mr\.?\s+|ms\.?\s+)?recorder\s+(.+?)(?:\s*,?\s*sc)?(?:\s+in\s+(?:court|chambers).*)?$`)
	judgeMaster     = regexp.MustCompile(`(?i)^master\s+(.+?)(?:\s+in\s+(?:court|chambers).*)?$`)
	judgeDeputy     = regexp.MustCompile(`(?i)^deputy\s+(?:high\s+court\s+)?judge\s+(.+?)(?:\s+in\s+(?:court|chambers).*)?$`)
	judgeBracket    = regexp.MustCompile(`(?i)^\(([A-Za-z\s]+?)\s*,?\s*sc?\)$`)
	judgeTrailingSC = regexp.MustCompile(`(?i)\s*,?\s*sc\s*$`)
	judgeTrailingJ  = regexp.MustCompile(`(?i)\s*j\.?\s*$`)
	judgeLocation   = regexp.MustCompile(`(?i)\s*(?:sitting|in|at)\s+(?:court|chambers).*$`)
	judgeLeading    = regexp.MustCompile(`(?i)^(?:the\s+|hon\.?\s+|honourable\s+)`)
	judgeHasLetter  = regexp.MustCompile(`[A-Za-z]`)
	judgeHasUpper   = regexp.MustCompile(`[A-Z]`)
)

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// cleanEnglishJudgeName strips titles and location clauses from a captured
// judge name and rejects captures that are clearly not names.
func cleanEnglishJudgeName(raw string, cfg Config) string {
	clean := strings.TrimSpace(raw)
	if clean == "" || matchesAny(clean, judgePreInvalid) {
		return ""
	}

	if m := judgeHonJ.FindStringSubmatch(clean); m != nil {
		clean = strings.TrimSpace(m[1])
	}
	if m := judgeRecorder.FindStringSubmatch(clean); m != nil {
		clean = strings.TrimSpace(m[1])
	}
	if m := judgeMaster.FindStringSubmatch(clean); m != nil {
		clean = strings.TrimSpace(m[1])
	}
	if m := judgeDeputy.FindStringSubmatch(clean); m != nil {
		clean = strings.TrimSpace(m[1])
	}
	if m := judgeBracket.FindStringSubmatch(clean); m != nil {
		clean = strings.TrimSpace(m[1])
	}

	clean = judgeTrailingSC.ReplaceAllString(clean, "")
	clean = judgeTrailingJ.ReplaceAllString(clean, "")
	clean = judgeLocation.ReplaceAllString(clean, "")
	clean = judgeLeading.ReplaceAllString(clean, "")
	clean = collapseSpace(clean)
	clean = strings.Trim(clean, ", ")

	if n := runeLen(clean); n < cfg.MinJudgeName || n > cfg.MaxJudgeName {
		return ""
	}
	if !judgeHasLetter.MatchString(clean) || !judgeHasUpper.MatchString(clean) {
		return ""
	}
	if matchesAny(clean, judgeInvalid) {
		return ""
	}
	return clean
}

func runJudgeLayer(text string, patterns []*regexp.Regexp, accept func(string) bool, cfg Config) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		if !accept(raw) {
			continue
		}
		if clean := cleanEnglishJudgeName(raw, cfg); clean != "" {
			return clean, true
		}
	}
	return "", false
}

var (
	judgeShortStop = regexp.MustCompile(`(?i)^(?:to|at|in|on|for|and|or|the|of|with|from)$`)
	judgeWideStop  = regexp.MustCompile(`(?i)^(?:to|at|in|on|for|and|or|the|of|with|from|by|this|that|these|those)$`)
	judgeTermStop  = regexp.MustCompile(`(?i)^(?:court|chambers|sitting|hearing|judgment|decision|order)$`)
	judgeTermLead  = regexp.MustCompile(`(?i)^(?:court|chambers|sitting|hearing|judgment|decision|order)`)
)

func englishJudgeField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "judge",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "titled-formats",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return runJudgeLayer(text, judgeSpecialPatterns, func(raw string) bool {
						return len(raw) >= 3 && !judgeShortStop.MatchString(raw)
					}, cfg)
				},
			},
			{
				Name:   "before-block",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return runJudgeLayer(text, judgeBeforePatterns, func(raw string) bool {
						return len(raw) >= 3 && !judgeWideStop.MatchString(raw) && !judgeTermStop.MatchString(raw)
					}, cfg)
				},
			},
			{
				Name:   "signature-block",
				Region: RegionFull,
				Run: func(text string) (string, bool) {
					return runJudgeLayer(text, judgeSignaturePatterns, func(raw string) bool {
						return len(raw) >= 5 && strings.Contains(raw, " ") && !judgeTermLead.MatchString(raw)
					}, cfg)
				},
			},
		},
	}
}

// Chinese judges.

var (
	chineseJudgePatterns = []*regexp.Regexp{
		regexp.MustCompile(`主審法官[：:]\s*([^\n]+)`),
		regexp.MustCompile(`審訊法官[：:]\s*([^\n]+)`),
		regexp.MustCompile(`(?:高等法院原訟法庭法官|法官)\s*([^\n\s]{2,10})`),
	}

	chineseJudgeTitleStrip = regexp.MustCompile(`(?i)\b(?:deputy|high|court|judge|justice|the|hon\.?|honourable|mr|ms|mrs)\b\s*`)
	chineseJudgeDigits     = regexp.MustCompile(`^\d+$`)
)

func cleanChineseJudgeName(raw string) string {
	clean := chineseJudgeTitleStrip.ReplaceAllString(raw, "")
	clean = judgeTrailingJ.ReplaceAllString(clean, "")
	clean = judgeLocation.ReplaceAllString(clean, "")
	clean = collapseSpace(clean)
	if n := runeLen(clean); n < 2 || n > 50 {
		return ""
	}
	if chineseJudgeDigits.MatchString(clean) {
		return ""
	}
	return clean
}

func chineseJudgeField(cfg Config) fieldSpec {
	names := []string{"presiding-label", "trial-label", "title-prefix"}
	strategies := make([]Strategy, 0, len(chineseJudgePatterns))
	for i, re := range chineseJudgePatterns {
		strategies = append(strategies, Strategy{
			Name:      names[i],
			Region:    RegionFull,
			Pattern:   re,
			Group:     1,
			Normalize: cleanChineseJudgeName,
			Valid: func(s string) bool {
				return s != ""
			},
		})
	}
	return fieldSpec{field: "judge", sentinel: SentinelText, strategies: strategies}
}
