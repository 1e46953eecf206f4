package extract

import "regexp"

// Chinese judgments carry a structured closing block: party labels, their
// representation, and the judge's signature. The footer pass reads that block
// and decides, line by line, whether a capture names a party or their lawyer.

type footerFields struct {
	plaintiff       string
	defendant       string
	judge           string
	plaintiffLawyer string
	defendantLawyer string
}

var (
	reFooterPlaintiff      = regexp.MustCompile(`原告人\s*[：:]\s*([^\n]+)`)
	footerDefendantAnchors = []*regexp.Regexp{
		regexp.MustCompile(`第一被告人\s*[：:]\s*([^\n]+)`),
		regexp.MustCompile(`被告人\s*[：:]\s*([^\n]+)`),
	}

	footerPartyLawyerTails = []*regexp.Regexp{
		regexp.MustCompile(`(無律師代表，親自行事|親自出庭應訊)`),
		regexp.MustCompile(`.*律師事務所.*代表`),
		regexp.MustCompile(`律師代表`),
	}

	footerJudgePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\s*([^)]+)\s*\)\s*高等法院.*?法官`),
		regexp.MustCompile(`([^\n(]+?)\s+高等法院.*?法官`),
		regexp.MustCompile(`法官\s*[：:]\s*([^\n]+)`),
		regexp.MustCompile(`主審法官\s*[：:]\s*([^\n]+)`),
	}
	reFooterJudgeTitle = regexp.MustCompile(`(高等法院.*?法官|法官|：)`)
	reFooterJudgeASCII = regexp.MustCompile(`[a-zA-Z0-9]`)

	reFooterPlaintiffLawyer   = regexp.MustCompile(`原告人\s*[：:]\s*([^\n]*律師[^\n]*)`)
	reFooterPlaintiffInPerson = regexp.MustCompile(`原告人\s*[：:]\s*無律師代表，親自行事`)
	footerDefendantLawyers    = []*regexp.Regexp{
		regexp.MustCompile(`第一被告人\s*[：:]\s*([^\n]*律師[^\n]*)`),
		regexp.MustCompile(`被告人\s*[：:]\s*([^\n]*律師[^\n]*)`),
	}
)

const plaintiffInPerson = "無律師代表，親自行事"

func cleanFooterPartyName(name string) string {
	cleaned := name
	for _, re := range footerPartyLawyerTails {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return collapseSpace(cleaned)
}

// footerParties reads the closing party labels, skipping captures that name
// the representation rather than the party.
func footerParties(footer string) (plaintiff, defendant string) {
	if m := reFooterPlaintiff.FindStringSubmatch(footer); m != nil {
		raw := collapseSpace(m[1])
		if !isChineseLawyerClause(raw) {
			plaintiff = cleanFooterPartyName(raw)
		}
	}
	for _, re := range footerDefendantAnchors {
		if m := re.FindStringSubmatch(footer); m != nil {
			raw := collapseSpace(m[1])
			if !isChineseLawyerClause(raw) {
				defendant = cleanFooterPartyName(raw)
				break
			}
		}
	}
	return plaintiff, defendant
}

func cleanFooterJudgeName(name string) string {
	cleaned := collapseSpace(reFooterJudgeTitle.ReplaceAllString(name, ""))
	if n := runeLen(cleaned); n >= 2 && n <= 10 && !reFooterJudgeASCII.MatchString(cleaned) {
		return cleaned
	}
	return ""
}

// footerJudge scans the whole document for the signature line, preferring the
// parenthesized name in front of the court title.
func footerJudge(text string) string {
	for _, re := range footerJudgePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := cleanFooterJudgeName(collapseSpace(m[1])); name != "" {
				return name
			}
		}
	}
	return ""
}

func footerLawyers(footer string) (plaintiffLawyer, defendantLawyer string) {
	if m := reFooterPlaintiffLawyer.FindStringSubmatch(footer); m != nil {
		plaintiffLawyer = collapseSpace(m[1])
	} else if reFooterPlaintiffInPerson.MatchString(footer) {
		plaintiffLawyer = plaintiffInPerson
	}
	for _, re := range footerDefendantLawyers {
		if m := re.FindStringSubmatch(footer); m != nil {
			defendantLawyer = collapseSpace(m[1])
			break
		}
	}
	return plaintiffLawyer, defendantLawyer
}

// extractFooterFields runs the footer pass over a Chinese document.
func extractFooterFields(text string, cfg Config) footerFields {
	footer := tailLines(text, cfg.FooterLines)

	var f footerFields
	f.plaintiff, f.defendant = footerParties(footer)
	f.judge = footerJudge(text)
	f.plaintiffLawyer, f.defendantLawyer = footerLawyers(footer)
	return f
}
