package pdftext

// PageBreak separates the text of consecutive pages in extracted documents.
const PageBreak = "\n\n--- Page Break ---\n\n"

// Document is the extracted text content of one PDF file.
type Document struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Size  int64  `json:"size"`
}

// FileInfo describes one PDF file found by a directory scan.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ValidationResult reports the outcome of validating one file. A failed
// validation carries the reason in Message.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}
