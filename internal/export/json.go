package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hkjudgments/courtextract/internal/extract"
)

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(records []extract.Record, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
