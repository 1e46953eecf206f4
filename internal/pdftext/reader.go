package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts plain text from judgment PDF files.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a reader that refuses files larger than maxFileSize bytes.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractFile reads a PDF from disk and returns its text with page break
// markers between pages.
func (r *Reader) ExtractFile(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if err := checkFileInfo(path, fileInfo, r.maxFileSize); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, err := r.extractText(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &Document{
		Path:  path,
		Name:  fileInfo.Name(),
		Text:  text,
		Pages: pdfReader.NumPage(),
		Size:  fileInfo.Size(),
	}, nil
}

// extractText walks the pages, tolerating failures on individual pages. Court
// registries publish PDFs from several generations of producers, so a page
// that cannot be parsed is skipped rather than aborting the file.
func (r *Reader) extractText(pdfReader *pdf.Reader) (string, error) {
	var builder strings.Builder
	total := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		content, ok := pageText(pdfReader, pageNum)
		if !ok {
			continue
		}

		if total+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - total
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		builder.WriteString(content)
		total += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString(PageBreak)
		}
	}

	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}
	return text, nil
}

// pageText extracts one page, recovering from panics inside the parser.
func pageText(pdfReader *pdf.Reader, pageNum int) (content string, ok bool) {
	defer func() {
		if recover() != nil {
			content, ok = "", false
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return "", false
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}

// checkFileInfo performs the cheap file checks shared by the reader, the
// validator, and the directory scanner.
func checkFileInfo(path string, info os.FileInfo, maxFileSize int64) error {
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			info.Size(), maxFileSize)
	}
	return nil
}
