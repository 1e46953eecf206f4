package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hkjudgments/courtextract/internal/extract"
)

const excelSheet = "Sheet1"

// Column widths matched to typical field content; long evidence fields get
// the widest columns.
var excelWidths = []float64{
	24, // file_name
	10, // language
	14, // document_type
	24, // case_number
	16, // trial_date
	40, // court_name
	30, // plaintiff
	36, // defendant
	20, // judge
	50, // lawyer
	30, // plaintiff_lawyer
	30, // defendant_lawyer
	50, // case_type
	50, // judgment_result
	16, // claim_amount
	16, // judgment_amount
	40, // file_path
	12, // text_length
}

// WriteExcel writes the records as a spreadsheet with a header row.
func WriteExcel(records []extract.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := Headers()
	if err := f.SetSheetRow(excelSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write Excel header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address Excel row %d: %w", i+2, err)
		}
		row := recordRow(rec)
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write Excel row for %s: %w", rec.FileName, err)
		}
	}

	for i, width := range excelWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve Excel column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(excelSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set Excel column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel output: %w", err)
	}
	return nil
}
