package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Lawyer extraction returns representation paragraphs, not names. The
// downstream analysis stage is better at reading "Mr X instructed by Y for
// the plaintiff" than any pattern here, so the job is to find and trim the
// right segments from the tail of the judgment.

var (
	englishLawyerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mr|ms|miss)\.?\s+[A-Z][a-z]+[^.]*?instructed\s+by[^.]*?for\s+(?:the\s+)?(?:plaintiff|defendant)`),
		regexp.MustCompile(`(?i)instructed\s+by[^.]*?for\s+(?:the\s+)?(?:plaintiff|defendant)`),
		regexp.MustCompile(`(?i)counsel\s+for\s+(?:the\s+)?(?:plaintiff|defendant)[:\s]+([^\n.]+)`),
		regexp.MustCompile(`(?i)(?:plaintiff|defendant).*?represented\s+by[^.]*?instructed\s+by`),
		regexp.MustCompile(`(?i)for\s+(?:the\s+)?(?:plaintiff|defendant)[:\s]+(?:mr|ms|miss)\.?\s+[A-Z][a-z]+`),
		regexp.MustCompile(`(?i)(?:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?(?:instructed\s+by|of\s+[A-Z][a-z]+.*?(?:chambers|solicitors?))`),
		regexp.MustCompile(`(?i)(?:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?for\s+(?:the\s+)?(?:plaintiff|defendant|1st|2nd|3rd|4th)`),
		regexp.MustCompile(`(?i)(?:leading\s+)?counsel.*?(?:instructed\s+by|for\s+(?:the\s+)?(?:plaintiff|defendant))`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?(?:was\s+)?not\s+represented`),
	}

	englishLawyerKeywords = []string{
		"instructed by", "counsel for", "represented by", "chambers", "solicitor",
		"barrister", "appeared for", "acting for", "solicitors", "law firm",
		"not represented", "in person", "did not appear",
	}

	reLawyerNameCue = regexp.MustCompile(`(?i)(?:mr|ms|miss)\.?\s+[A-Z][a-z]+`)

	lawyerClearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?instructed\s+by.*?for\s+(?:the\s+)?(?:plaintiff|defendant)`),
		regexp.MustCompile(`(?i)for\s+(?:the\s+)?(?:plaintiff|defendant)[:\s]+(?:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?(?:instructed|chambers)`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?not\s+represented`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?did\s+not\s+appear`),
	}

	reParagraphSplit = regexp.MustCompile(`\n\s*\n`)

	lawyerPageMarker  = regexp.MustCompile(`\s*-\s*\d+\s*-\s*`)
	lawyerUnderscores = regexp.MustCompile(`\s*_{5,}\s*`)
	lawyerPageTail    = regexp.MustCompile(`(?i)\s*(?:page|頁|第.*頁).*$`)
	lawyerLeadingSep  = regexp.MustCompile(`^\s*[,;.:\s]+`)
	lawyerTrailingDot = regexp.MustCompile(`[.\s]*$`)
)

func cleanLawyerSegment(text string) string {
	cleaned := collapseSpace(text)
	cleaned = lawyerPageMarker.ReplaceAllString(cleaned, " ")
	cleaned = lawyerUnderscores.ReplaceAllString(cleaned, " ")
	cleaned = lawyerPageTail.ReplaceAllString(cleaned, "")
	cleaned = lawyerLeadingSep.ReplaceAllString(cleaned, "")
	cleaned = lawyerTrailingDot.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// expandRunes widens the byte range [start, end) by pad runes on each side
// and returns the covered text.
func expandRunes(s string, start, end, pad int) string {
	for i := 0; i < pad && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:start])
		start -= size
	}
	for i := 0; i < pad && end < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[start:end]
}

func combineLawyerSegments(segments []string, maxSegments, maxTotal int) string {
	var unique []string
	for _, segment := range segments {
		duplicate := false
		for _, existing := range unique {
			if runeLen(segment) > 30 && runeLen(existing) > 30 &&
				headRunes(segment, 30) == headRunes(existing, 30) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, segment)
		}
	}
	if len(unique) > maxSegments {
		unique = unique[:maxSegments]
	}

	var kept []string
	total := 0
	for _, segment := range unique {
		n := runeLen(segment)
		if total+n <= maxTotal {
			kept = append(kept, segment)
			total += n
			continue
		}
		if remaining := maxTotal - total; remaining > 30 {
			kept = append(kept, headRunes(segment, remaining-3)+"...")
		}
		break
	}
	return strings.Join(kept, " | ")
}

func extractEnglishLawyerSegments(text string, cfg Config) (string, bool) {
	total := runeLen(text)
	lastSection := tailRunes(text, total/5)

	var segments []string

	// Paragraph scan over the tail.
	for _, paragraph := range reParagraphSplit.Split(lastSection, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if runeLen(paragraph) < cfg.MinLawyerParagraph {
			continue
		}
		hit := false
		for _, re := range englishLawyerPatterns {
			if re.MatchString(paragraph) {
				hit = true
				break
			}
		}
		if !hit {
			lower := strings.ToLower(paragraph)
			keyword := false
			for _, k := range englishLawyerKeywords {
				if strings.Contains(lower, k) {
					keyword = true
					break
				}
			}
			hit = keyword && reLawyerNameCue.MatchString(paragraph)
		}
		if hit {
			if cleaned := cleanLawyerSegment(paragraph); runeLen(cleaned) >= 15 && runeLen(cleaned) <= 1000 {
				segments = append(segments, cleaned)
			}
		}
	}

	// Last lines: signatures often sit below the final page break.
	if len(segments) == 0 {
		lines := strings.Split(lastSection, "\n")
		if len(lines) > 10 {
			lines = lines[len(lines)-10:]
		}
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lower := strings.ToLower(line)
			if !strings.Contains(lower, "instructed") && !strings.Contains(lower, "counsel") &&
				!strings.Contains(lower, "represented") && !strings.Contains(lower, "chambers") {
				continue
			}
			var context []string
			for j := maxInt(0, i-2); j < minInt(len(lines), i+3); j++ {
				if trimmed := strings.TrimSpace(lines[j]); trimmed != "" {
					context = append(context, trimmed)
				}
			}
			if len(context) > 0 {
				if cleaned := cleanLawyerSegment(strings.Join(context, " ")); runeLen(cleaned) >= 15 && runeLen(cleaned) <= 800 {
					segments = append(segments, cleaned)
					break
				}
			}
		}
	}

	// Widen to the last 30% and look for unambiguous clauses.
	if len(segments) == 0 {
		extended := tailRunes(text, total*30/100)
		for _, re := range lawyerClearPatterns {
			if len(segments) >= 2 {
				break
			}
			for _, loc := range re.FindAllStringIndex(extended, -1) {
				if len(segments) >= 2 {
					break
				}
				context := expandRunes(extended, loc[0], loc[1], 100)
				if cleaned := cleanLawyerSegment(context); runeLen(cleaned) >= 20 && runeLen(cleaned) <= 600 {
					segments = append(segments, cleaned)
				}
			}
		}
	}

	if len(segments) == 0 {
		return "", false
	}
	return combineLawyerSegments(segments, cfg.MaxLawyerSegments, cfg.MaxLawyerTotalLen), true
}

var (
	chineseLawyerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`委托律师[：:]\s*[^\n]+`),
		regexp.MustCompile(`代理律师[：:]\s*[^\n]+`),
		regexp.MustCompile(`(?:原告|申請人|被告|被申請人).*?委託.*?代理`),
		regexp.MustCompile(`律师.*?(?:代表|代理)`),
	}

	chineseLawyerKeywords = []string{"委托律师", "代理律师", "委託", "代理", "律师"}
)

func extractChineseLawyerSegments(text string) (string, bool) {
	lastSection := tailRunes(text, runeLen(text)/5)

	var segments []string
	for _, paragraph := range reParagraphSplit.Split(lastSection, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if runeLen(paragraph) < 20 {
			continue
		}
		hit := false
		for _, re := range chineseLawyerPatterns {
			if re.MatchString(paragraph) {
				hit = true
				break
			}
		}
		if !hit {
			for _, k := range chineseLawyerKeywords {
				if strings.Contains(paragraph, k) {
					hit = true
					break
				}
			}
		}
		if hit {
			if cleaned := cleanLawyerSegment(paragraph); runeLen(cleaned) >= 15 && runeLen(cleaned) <= 600 {
				segments = append(segments, cleaned)
			}
		}
	}

	if len(segments) == 0 {
		return "", false
	}
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return strings.Join(segments, " | "), true
}

func englishLawyerField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "lawyer",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "tail-segments", Region: RegionFull, Run: func(text string) (string, bool) {
				return extractEnglishLawyerSegments(text, cfg)
			}},
		},
	}
}

func chineseLawyerField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "lawyer",
		sentinel: SentinelText,
		strategies: []Strategy{
			{Name: "tail-paragraphs", Region: RegionFull, Run: extractChineseLawyerSegments},
		},
	}
}
