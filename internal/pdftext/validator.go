package pdftext

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks PDF files before they enter the extraction pipeline.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the specified size limit.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// Validate runs the full check on one file. A failed validation is reported
// in the result, not as an error.
func (v *Validator) Validate(path string) *ValidationResult {
	result := &ValidationResult{Path: path}
	if err := v.check(path); err != nil {
		result.Message = err.Error()
		return result
	}
	result.Valid = true
	return result
}

// IsValidPDF reports whether the file passes the full validation.
func (v *Validator) IsValidPDF(path string) bool {
	return v.check(path) == nil
}

// ValidateFileInfo performs the cheap checks on already-stated file info
// without opening the file. Directory scans use this to filter candidates.
func (v *Validator) ValidateFileInfo(path string, info os.FileInfo) error {
	return checkFileInfo(path, info, v.maxFileSize)
}

// check layers the cheap tests first; only a file that looks like a PDF from
// the outside is handed to the full pdfcpu validation.
func (v *Validator) check(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if err := checkFileInfo(path, info, v.maxFileSize); err != nil {
		return err
	}
	if err := checkHeader(path); err != nil {
		return err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// checkHeader sniffs the %PDF- magic without parsing the document.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 5)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("cannot read file header: %w", err)
	}
	if string(header) != "%PDF-" {
		return fmt.Errorf("file does not start with a PDF header: %s", path)
	}
	return nil
}
