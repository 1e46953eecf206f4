package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hkjudgments/courtextract/internal/extract"
)

// summaryFields lists the record fields tracked for completeness, in report
// order. File identity fields are excluded: they are always present and say
// nothing about extraction quality.
var summaryFields = []string{
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
	"text_length",
}

// Summary aggregates one batch run for reporting.
type Summary struct {
	TotalFiles        int                `json:"total_files"`
	Processed         int                `json:"processed"`
	Failed            int                `json:"failed"`
	SuccessRate       float64            `json:"success_rate"`
	ElapsedSeconds    float64            `json:"elapsed_seconds"`
	Languages         map[string]int     `json:"language_distribution"`
	DocumentTypes     map[string]int     `json:"document_type_distribution"`
	Courts            map[string]int     `json:"court_distribution"`
	FieldCompleteness map[string]float64 `json:"field_completeness"`
	FailedFiles       []string           `json:"failed_files,omitempty"`
	SavedFiles        []string           `json:"saved_files,omitempty"`
}

// Summarize builds the aggregate view of a run.
func Summarize(records []extract.Record, failures []FileFailure, elapsed time.Duration) Summary {
	s := Summary{
		TotalFiles:        len(records) + len(failures),
		Processed:         len(records),
		Failed:            len(failures),
		ElapsedSeconds:    elapsed.Seconds(),
		Languages:         make(map[string]int),
		DocumentTypes:     make(map[string]int),
		Courts:            make(map[string]int),
		FieldCompleteness: make(map[string]float64),
	}
	if s.TotalFiles > 0 {
		s.SuccessRate = float64(s.Processed) / float64(s.TotalFiles) * 100
	} else {
		s.SuccessRate = 100
	}

	for _, rec := range records {
		s.Languages[string(rec.Language)]++
		s.DocumentTypes[rec.DocumentType]++
		if rec.CourtName != "" {
			s.Courts[rec.CourtName]++
		}
	}

	if len(records) > 0 {
		filled := make(map[string]int, len(summaryFields))
		for _, rec := range records {
			for _, field := range summaryFields {
				if fieldFilled(rec, field) {
					filled[field]++
				}
			}
		}
		for _, field := range summaryFields {
			s.FieldCompleteness[field] = float64(filled[field]) / float64(len(records)) * 100
		}
	}

	for _, f := range failures {
		s.FailedFiles = append(s.FailedFiles, fmt.Sprintf("%s: %s", f.Path, f.Error))
	}
	return s
}

// fieldFilled reports whether a record carries a real value for the field.
// Empty strings and the "unknown" amount sentinel both count as missing.
func fieldFilled(rec extract.Record, field string) bool {
	var v string
	switch field {
	case "language":
		v = string(rec.Language)
	case "document_type":
		v = rec.DocumentType
	case "case_number":
		v = rec.CaseNumber
	case "trial_date":
		v = rec.TrialDate
	case "court_name":
		v = rec.CourtName
	case "plaintiff":
		v = rec.Plaintiff
	case "defendant":
		v = rec.Defendant
	case "judge":
		v = rec.Judge
	case "lawyer":
		v = rec.Lawyer
	case "plaintiff_lawyer":
		v = rec.PlaintiffLawyer
	case "defendant_lawyer":
		v = rec.DefendantLawyer
	case "case_type":
		v = rec.CaseType
	case "judgment_result":
		v = rec.JudgmentResult
	case "claim_amount":
		v = rec.ClaimAmount
	case "judgment_amount":
		v = rec.JudgmentAmount
	case "text_length":
		return rec.TextLength > 0
	default:
		return false
	}
	return v != "" && v != "unknown"
}

// Text renders the summary as the plain-text report written next to the
// extraction results.
func (s Summary) Text() string {
	var b strings.Builder
	b.WriteString("Court Judgment Extraction Summary\n")
	b.WriteString("=================================\n\n")
	fmt.Fprintf(&b, "Files found:   %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Processed:     %d\n", s.Processed)
	fmt.Fprintf(&b, "Failed:        %d\n", s.Failed)
	fmt.Fprintf(&b, "Success rate:  %.1f%%\n", s.SuccessRate)
	fmt.Fprintf(&b, "Elapsed:       %.2fs\n", s.ElapsedSeconds)

	writeDistribution(&b, "Language distribution", s.Languages)
	writeDistribution(&b, "Document type distribution", s.DocumentTypes)
	writeDistribution(&b, "Court distribution", s.Courts)

	if len(s.FieldCompleteness) > 0 {
		b.WriteString("\nField completeness:\n")
		for _, field := range summaryFields {
			pct, ok := s.FieldCompleteness[field]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %-18s %5.1f%%\n", field+":", pct)
		}
	}

	if len(s.FailedFiles) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range s.FailedFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	if len(s.SavedFiles) > 0 {
		b.WriteString("\nOutput files:\n")
		for _, f := range s.SavedFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	return b.String()
}

func writeDistribution(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "\n%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
	}
}
