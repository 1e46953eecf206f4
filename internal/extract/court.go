package extract

import (
	"regexp"
	"strings"
)

// Court names appear in the caption in a handful of layouts, from the full
// three-line form down to a bare "HIGH COURT" mention. The strategies run
// from strictest to loosest; Chinese documents end on a constant because
// the corpus is overwhelmingly 原訟法庭 judgments.

var (
	englishCourtPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION\s+COURT OF FIRST INSTANCE)`),
		regexp.MustCompile(`(?is)IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION\s+COURT OF APPEAL)`),
		regexp.MustCompile(`(?is)IN THE\s+(COURT OF FIRST INSTANCE\s+OF THE HIGH COURT)`),
		regexp.MustCompile(`(?is)IN THE\s+(HIGH COURT OF THE[^\n]*?\n[^\n]*?COURT OF FIRST INSTANCE)`),
		regexp.MustCompile(`(?is)IN THE\s+(HIGH COURT OF THE[^\n]*?\n[^\n]*?\n[^\n]*?COURT OF FIRST INSTANCE)`),
		regexp.MustCompile(`(?is)IN THE\s+(.*?COURT OF FIRST INSTANCE)`),
		regexp.MustCompile(`(?is)IN THE\s+(.*?COURT OF APPEAL)`),
		regexp.MustCompile(`(?is)IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION)`),
		regexp.MustCompile(`(?is)IN THE\s+(.*?HIGH COURT.*?)(?:ACTION|PROCEEDING|BETWEEN)`),
		regexp.MustCompile(`(?is)IN THE\s+(.*?COURT.*?)(?:ACTION|PROCEEDING|BETWEEN)`),
	}

	chineseCourtPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(香港特別行政區高等法院原訟法庭)`),
		regexp.MustCompile(`(香港特別行政區高等法院)`),
		regexp.MustCompile(`(香\s*港\s*特\s*別\s*行\s*政\s*區\s*高\s*等\s*法\s*院(?:\s*原\s*訟\s*法\s*庭)?)`),
		regexp.MustCompile(`(高等法院原訟法庭)`),
		regexp.MustCompile(`(?s)(.{0,20}高等法院.{0,20}原訟法庭)`),
		regexp.MustCompile(`(?s)(.{0,20}高等法院.{0,20}法庭)`),
	}

	courtSpacedHK      = regexp.MustCompile(`香\s*港\s*特\s*別\s*行\s*政\s*區`)
	courtPageMarker    = regexp.MustCompile(`-\s*\d+\s*-`)
	courtUnderscores   = regexp.MustCompile(`_{5,}`)
	courtEnglishTail   = regexp.MustCompile(`(?i)\s*(?:ACTION NO|PROCEEDING|BETWEEN).*$`)
	courtChineseTail   = regexp.MustCompile(`\s*(?:案件編號|民事訴訟案件|原告人|被告人).*$`)
	courtEnglishReject = []string{"BETWEEN", "PLAINTIFF", "DEFENDANT", "ACTION NO", "PROCEEDING", "BEFORE"}
	courtEnglishAccept = []string{"HIGH COURT", "COURT OF FIRST INSTANCE", "HONG KONG", "ADMINISTRATIVE REGION"}
	courtChineseReject = []string{"原告", "被告", "案件編號", "申請", "判決", "上訴", "評估", "考慮", "決定"}
	courtChineseAccept = []string{"香港特別行政區", "高等法院", "原訟法庭", "民事司法管轄"}
)

func cleanCourtName(s string) string {
	s = collapseSpace(s)
	s = courtSpacedHK.ReplaceAllString(s, "香港特別行政區")
	s = courtPageMarker.ReplaceAllString(s, "")
	s = courtUnderscores.ReplaceAllString(s, "")
	s = courtEnglishTail.ReplaceAllString(s, "")
	s = courtChineseTail.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func validEnglishCourtName(cfg Config) func(string) bool {
	return func(s string) bool {
		n := runeLen(s)
		if n < cfg.MinCourtName || n > cfg.MaxCourtName {
			return false
		}
		upper := strings.ToUpper(s)
		if !strings.Contains(upper, "COURT") {
			return false
		}
		for _, bad := range courtEnglishReject {
			if strings.Contains(upper, bad) {
				return false
			}
		}
		for _, good := range courtEnglishAccept {
			if strings.Contains(upper, good) {
				return true
			}
		}
		// Unanchored names pass only when short enough to be a caption line.
		return n <= 100
	}
}

func validChineseCourtName(s string) bool {
	if !strings.Contains(s, "法院") && !strings.Contains(s, "法庭") {
		return false
	}
	for _, bad := range courtChineseReject {
		if strings.Contains(s, bad) {
			return false
		}
	}
	for _, good := range courtChineseAccept {
		if strings.Contains(s, good) {
			return true
		}
	}
	return runeLen(s) <= 50
}

func englishCourtField(cfg Config) fieldSpec {
	names := []string{
		"full-cfi-caption", "full-coa-caption", "cfi-of-high-court",
		"two-line-cfi", "three-line-cfi", "loose-cfi", "loose-coa",
		"hksar-high-court", "high-court-to-anchor", "court-to-anchor",
	}
	valid := validEnglishCourtName(cfg)
	strategies := make([]Strategy, 0, len(englishCourtPatterns))
	for i, re := range englishCourtPatterns {
		strategies = append(strategies, Strategy{
			Name:      names[i],
			Region:    RegionHeader,
			Pattern:   re,
			Group:     1,
			Normalize: cleanCourtName,
			Valid:     valid,
		})
	}
	return fieldSpec{field: "court_name", sentinel: SentinelText, strategies: strategies}
}

func chineseCourtField(cfg Config) fieldSpec {
	names := []string{
		"full-caption", "hksar-high-court", "spaced-caption",
		"high-court-cfi", "flex-cfi", "flex-court",
	}
	strategies := make([]Strategy, 0, len(chineseCourtPatterns)+1)
	for i, re := range chineseCourtPatterns {
		strategies = append(strategies, Strategy{
			Name:      names[i],
			Region:    RegionHeader,
			Pattern:   re,
			Group:     1,
			Normalize: cleanCourtName,
			Valid:     validChineseCourtName,
		})
	}
	// Corpus default: Chinese civil judgments in this collection are CFI.
	strategies = append(strategies, Strategy{
		Name:   "cfi-default",
		Region: RegionHeader,
		Run: func(string) (string, bool) {
			return "香港特別行政區高等法院原訟法庭", true
		},
	})
	return fieldSpec{field: "court_name", sentinel: SentinelText, strategies: strategies}
}
