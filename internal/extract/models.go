package extract

import (
	"path/filepath"
	"unicode/utf8"
)

// Language identifies which pattern table and footer handling a document uses.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageChinese Language = "chinese"
)

// Sentinel values written when every strategy for a field misses. Amount
// fields report "unknown"; textual fields report the empty string. The
// distinction is part of the output contract and preserved by downstream
// serialization.
const (
	SentinelText   = ""
	SentinelAmount = "unknown"
)

// Document type assigned when no case-prefix code is found in the file name.
const DocumentTypeGeneric = "GENERIC"

// Document is one court judgment prepared for extraction: the raw text, the
// file name it came from, the language decided once by the classifier, and
// the bounded regions strategies scan against.
type Document struct {
	Text     string
	FileName string
	Language Language
	Regions  Regions
}

// Record is the final per-document output: one string value per field of the
// catalog plus file metadata. It is assembled once and not mutated afterwards;
// a field whose strategies all missed holds its sentinel value.
type Record struct {
	FileName     string   `json:"file_name"`
	Language     Language `json:"language"`
	DocumentType string   `json:"document_type"`

	CaseNumber string `json:"case_number"`
	TrialDate  string `json:"trial_date"`
	CourtName  string `json:"court_name"`
	Plaintiff  string `json:"plaintiff"`
	Defendant  string `json:"defendant"`
	Judge      string `json:"judge"`

	// Lawyer holds the raw representation segment; the split into
	// plaintiff/defendant counsel is filled by the footer parser for
	// Chinese documents and by the analysis stage for English ones.
	Lawyer          string `json:"lawyer"`
	PlaintiffLawyer string `json:"plaintiff_lawyer"`
	DefendantLawyer string `json:"defendant_lawyer"`

	CaseType       string `json:"case_type"`
	JudgmentResult string `json:"judgment_result"`
	ClaimAmount    string `json:"claim_amount"`
	JudgmentAmount string `json:"judgment_amount"`

	// Filled by the analysis stage.
	JudgmentRelationships string `json:"judgment_relationships,omitempty"`

	// Corrigendum notices carry details about the document they correct.
	CorrectedDocumentType string `json:"corrected_document_type,omitempty"`
	OriginalDocumentDate  string `json:"original_document_date,omitempty"`
	CorrigendumDate       string `json:"corrigendum_date,omitempty"`
	CorrectionSummary     string `json:"correction_summary,omitempty"`

	FilePath   string `json:"file_path"`
	TextLength int    `json:"text_length"`
}

// Config holds the tunable limits of the extraction engine. Thresholds are
// explicit here rather than buried in patterns so callers can adjust them;
// the defaults reproduce the documented behaviour.
type Config struct {
	// Region sizes, in runes (lines for the Chinese footer).
	HeaderRunes int
	FooterRunes int
	FooterLines int

	// Language classification sample bounds.
	SampleTokens int
	SampleRunes  int
	HanRatio     float64

	// Validity bounds for names, in runes.
	MinPartyName int
	MaxPartyName int
	MinCourtName int
	MaxCourtName int
	MinJudgeName int
	MaxJudgeName int

	// Context-score thresholds for the three amount search layers.
	PreciseScore  float64
	ExtendedScore float64
	LooseScore    float64

	// Lawyer segment collection limits.
	MaxLawyerSegments  int
	MaxLawyerTotalLen  int
	MinLawyerParagraph int
}

// DefaultConfig returns the engine configuration with default thresholds.
func DefaultConfig() Config {
	return Config{
		HeaderRunes:        15000,
		FooterRunes:        3000,
		FooterLines:        50,
		SampleTokens:       200,
		SampleRunes:        1000,
		HanRatio:           0.1,
		MinPartyName:       2,
		MaxPartyName:       200,
		MinCourtName:       5,
		MaxCourtName:       200,
		MinJudgeName:       3,
		MaxJudgeName:       50,
		PreciseScore:       2.5,
		ExtendedScore:      2.0,
		LooseScore:         1.0,
		MaxLawyerSegments:  3,
		MaxLawyerTotalLen:  600,
		MinLawyerParagraph: 30,
	}
}

// newRecord seeds a record with file metadata. Field values are filled by the
// assembler; sentinels are applied there so a bare record stays distinguishable.
func newRecord(text, fileName string) Record {
	name := ""
	if fileName != "" {
		name = filepath.Base(fileName)
	}
	return Record{
		FileName:     name,
		FilePath:     fileName,
		DocumentType: DetectDocumentType(fileName),
		TextLength:   utf8.RuneCountInString(text),
	}
}
