package extract

import "strings"

// Keywords whose presence in the head sample marks a Chinese judgment.
var chineseKeywords = []string{"被告", "原告", "法官", "高等法院", "判決", "訴訟"}

// DetectLanguage classifies a document as English or Chinese from a bounded
// head sample. The decision is deterministic, never errors, and is made
// exactly once per document: it selects the pattern table and the footer
// handling, and is not re-evaluated mid-pipeline. Absence of any signal
// defaults to English.
func DetectLanguage(text string) Language {
	return DefaultConfig().DetectLanguage(text)
}

// DetectLanguage is the configurable form of the package-level classifier.
func (c Config) DetectLanguage(text string) Language {
	if text == "" {
		return LanguageEnglish
	}

	// Keyword scan over the first tokens.
	tokens := strings.Fields(text)
	if len(tokens) > c.SampleTokens {
		tokens = tokens[:c.SampleTokens]
	}
	sample := strings.Join(tokens, " ")
	hits := 0
	for _, kw := range chineseKeywords {
		if strings.Contains(sample, kw) {
			hits++
		}
	}
	if hits >= 1 {
		return LanguageChinese
	}

	// Han-character ratio over a fixed head window. Catches documents whose
	// caption avoids the keyword set.
	head := headRunes(text, c.SampleRunes)
	if n := runeLen(head); n > 0 {
		if float64(hanCount(head))/float64(n) > c.HanRatio {
			return LanguageChinese
		}
	}
	return LanguageEnglish
}
