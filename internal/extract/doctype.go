package extract

import (
	"regexp"
	"strings"
)

// Case-prefix codes recognized in file names, longest first so HCAL is not
// shadowed by HCA. The code is record metadata only; extraction never
// branches on it.
var documentTypeCodes = []string{
	"HCAL", "HCMP", "FCMC", "CACC", "CAMP", "CACV", "DCCC", "DCMP", "DCCJ",
	"HCA", "LD", "HC",
}

// DetectDocumentType returns the case-prefix code carried by the file name,
// or GENERIC when none is present.
func DetectDocumentType(fileName string) string {
	if fileName == "" {
		return DocumentTypeGeneric
	}
	upper := strings.ToUpper(fileName)
	for _, code := range documentTypeCodes {
		if strings.Contains(upper, code) {
			return code
		}
	}
	return DocumentTypeGeneric
}

// Corrigendum notices are short correction slips issued against an earlier
// judgment. They carry no judgment content of their own, so they produce a
// reduced record with correction metadata instead of outcome fields.

var corrigendumIndicators = []string{
	"CORRIGENDUM",
	"C O R R I G E N D U M",
	"corrigendum in the Judgment",
	"corrigendum in the Decision",
	"Please note the following corrigendum",
	"勘誤",
	"更正啟事",
}

// IsCorrigendum reports whether the text is a corrigendum notice.
func IsCorrigendum(text string) bool {
	for _, indicator := range corrigendumIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

var (
	corrigendumSourcePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)corrigendum in the (Judgment|Decision) dated (\d{1,2} \w+ \d{4})`),
		regexp.MustCompile(`(?i)in the (Judgment|Decision) dated (\d{1,2} \w+ \d{4})`),
	}
	reCorrigendumDate = regexp.MustCompile(`Date of Corrigendum:\s*(\d{1,2} \w+ \d{4})`)

	correctionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)At page \d+.*?"([^"]+)" be corrected to "([^"]+)"`),
		regexp.MustCompile(`(?i)should read:?\s*"([^"]+)"`),
		regexp.MustCompile(`(?i)The names of.*?are added`),
		regexp.MustCompile(`(?i)corrected to\s*"([^"]+)"`),
	}
)

// corrigendumDetails pulls the correction metadata out of a notice: which
// document it corrects, when, and a short summary of the corrections.
func corrigendumDetails(text string, rec *Record) {
	for _, re := range corrigendumSourcePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			rec.CorrectedDocumentType = m[1]
			rec.OriginalDocumentDate = m[2]
			break
		}
	}
	if m := reCorrigendumDate.FindStringSubmatch(text); m != nil {
		rec.CorrigendumDate = m[1]
	}

	var corrections []string
	for _, re := range correctionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, 2) {
			switch {
			case len(m) >= 3 && m[2] != "":
				corrections = append(corrections, m[1]+" → "+m[2])
			case len(m) >= 2 && m[1] != "":
				corrections = append(corrections, m[1])
			default:
				corrections = append(corrections, collapseSpace(m[0]))
			}
		}
	}
	if len(corrections) == 0 {
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "names") && strings.Contains(lower, "added"):
			corrections = append(corrections, "counsel names added")
		case strings.Contains(lower, "corrected"):
			corrections = append(corrections, "text correction")
		default:
			corrections = append(corrections, "format or content correction")
		}
	}
	if len(corrections) > 2 {
		corrections = corrections[:2]
	}
	rec.CorrectionSummary = strings.Join(corrections, "; ")
}
