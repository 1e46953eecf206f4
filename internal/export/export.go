// Package export writes extraction records to the supported output formats.
// Column order is part of the output contract and identical across formats.
package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hkjudgments/courtextract/internal/extract"
)

// fieldOrder is the fixed column order shared by CSV and Excel outputs.
var fieldOrder = []string{
	"file_name",
	"language",
	"document_type",
	"case_number",
	"trial_date",
	"court_name",
	"plaintiff",
	"defendant",
	"judge",
	"lawyer",
	"plaintiff_lawyer",
	"defendant_lawyer",
	"case_type",
	"judgment_result",
	"claim_amount",
	"judgment_amount",
	"file_path",
	"text_length",
}

// Headers returns the output column names in their fixed order.
func Headers() []string {
	headers := make([]string, len(fieldOrder))
	copy(headers, fieldOrder)
	return headers
}

// recordRow flattens a record into the fixed column order.
func recordRow(rec extract.Record) []string {
	return []string{
		rec.FileName,
		string(rec.Language),
		rec.DocumentType,
		rec.CaseNumber,
		rec.TrialDate,
		rec.CourtName,
		rec.Plaintiff,
		rec.Defendant,
		rec.Judge,
		rec.Lawyer,
		rec.PlaintiffLawyer,
		rec.DefendantLawyer,
		rec.CaseType,
		rec.JudgmentResult,
		rec.ClaimAmount,
		rec.JudgmentAmount,
		rec.FilePath,
		strconv.Itoa(rec.TextLength),
	}
}

// ResultsPath builds the timestamped output file name for a format, e.g.
// extraction_results_20250115_143052.json.
func ResultsPath(dir, format string, at time.Time) string {
	name := fmt.Sprintf("extraction_results_%s.%s", at.Format("20060102_150405"), format)
	return filepath.Join(dir, name)
}

// SummaryPath builds the timestamped summary report file name.
func SummaryPath(dir string, at time.Time) string {
	name := fmt.Sprintf("extraction_summary_%s.txt", at.Format("20060102_150405"))
	return filepath.Join(dir, name)
}
