package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/hkjudgments/courtextract/internal/extract"
)

// WriteCSV writes the records as a CSV file with a header row. Multi-line
// field values (lawyer blocks, judgment segments) are quoted by the encoder.
func WriteCSV(records []extract.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", rec.FileName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}
