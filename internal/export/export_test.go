package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hkjudgments/courtextract/internal/extract"
)

func sampleRecords() []extract.Record {
	return []extract.Record{
		{
			FileName:       "HCA001812_2022.pdf",
			Language:       extract.LanguageEnglish,
			DocumentType:   "HCA",
			CaseNumber:     "ACTION NO 1812 OF 2022",
			TrialDate:      "3 May 2023",
			CourtName:      "HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION",
			Plaintiff:      "CHEUNG WING HONG",
			Defendant:      "CAPITAL CENTURY TEXTILE COMPANY LIMITED (1st Defendant) | LAI SIU KUEN (2nd Defendant)",
			Judge:          "Maria Yuen",
			Lawyer:         "Mr Julian Lam, instructed by Messrs Wong & Partners, for the plaintiff",
			CaseType:       "breach of contract",
			JudgmentResult: "the defendants do pay the plaintiff",
			ClaimAmount:    "HK$1,250,000",
			JudgmentAmount: "HK$850,000",
			FilePath:       "/data/HCA001812_2022.pdf",
			TextLength:     3040,
		},
		{
			FileName:        "HCA001289_2019.pdf",
			Language:        extract.LanguageChinese,
			DocumentType:    "HCA",
			CaseNumber:      "民事訴訟 2019 年第 1289 號",
			Plaintiff:       "陳大文",
			Defendant:       "黃志強 (第1被告人)",
			Judge:           "陳美蘭",
			Lawyer:          "原告人: 由張三律師事務所委派李四律師代表\n第一被告人: 無律師代表，親自行事",
			PlaintiffLawyer: "由張三律師事務所委派李四律師代表",
			DefendantLawyer: "無律師代表，親自行事",
			ClaimAmount:     "HK$1,200,000",
			JudgmentAmount:  "HK$800,000",
			FilePath:        "/data/HCA001289_2019.pdf",
			TextLength:      724,
		},
	}
}

func TestHeaders(t *testing.T) {
	want := []string{
		"file_name", "language", "document_type", "case_number", "trial_date",
		"court_name", "plaintiff", "defendant", "judge", "lawyer",
		"plaintiff_lawyer", "defendant_lawyer", "case_type", "judgment_result",
		"claim_amount", "judgment_amount", "file_path", "text_length",
	}
	assert.Equal(t, want, Headers())

	// Headers returns a copy; the fixed order must not be writable.
	h := Headers()
	h[0] = "changed"
	assert.Equal(t, "file_name", Headers()[0])
}

func TestWriteJSON(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "export_json_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "results.json")
	records := sampleRecords()
	require.NoError(t, WriteJSON(records, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []extract.Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, records, got)
	assert.Contains(t, string(data), "\n  {", "output should be indented")
}

func TestWriteCSV(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "export_csv_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "results.csv")
	records := sampleRecords()
	require.NoError(t, WriteCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, "HCA001812_2022.pdf", rows[1][0])
	assert.Equal(t, "english", rows[1][1])
	assert.Equal(t, "3040", rows[1][17])

	// Multi-line lawyer block survives the round trip.
	assert.Equal(t, records[1].Lawyer, rows[2][9])
}

func TestWriteExcel(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "export_excel_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "results.xlsx")
	records := sampleRecords()
	require.NoError(t, WriteExcel(records, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, "民事訴訟 2019 年第 1289 號", rows[2][3])
	assert.Equal(t, "HK$850,000", rows[1][15])
}

func TestOutputPaths(t *testing.T) {
	at := time.Date(2025, 1, 15, 14, 30, 52, 0, time.UTC)

	assert.Equal(t,
		filepath.Join("out", "extraction_results_20250115_143052.json"),
		ResultsPath("out", "json", at))
	assert.Equal(t,
		filepath.Join("out", "extraction_results_20250115_143052.xlsx"),
		ResultsPath("out", "xlsx", at))
	assert.Equal(t,
		filepath.Join("out", "extraction_summary_20250115_143052.txt"),
		SummaryPath("out", at))
}
