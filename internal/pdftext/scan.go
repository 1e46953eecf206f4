package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner discovers PDF files under a directory tree.
type Scanner struct {
	maxFileSize int64
	validator   *Validator
}

// NewScanner creates a scanner with the specified size limit.
func NewScanner(maxFileSize int64) *Scanner {
	return &Scanner{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// FindPDFs returns every PDF file under the directory that passes the cheap
// file checks. Files that cannot be read are skipped, not reported.
func (s *Scanner) FindPDFs(directory string) ([]FileInfo, error) {
	return s.FindPDFsLimited(directory, 0)
}

// FindPDFsLimited finds PDF files under the directory, stopping after limit
// results. A limit of zero means no limit.
func (s *Scanner) FindPDFsLimited(directory string, limit int) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var pdfFiles []FileInfo
	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if a specific entry fails.
			return nil //nolint:nilerr
		}

		if d.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if limit > 0 && len(pdfFiles) >= limit {
			return filepath.SkipAll
		}

		if !isPDFFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return pdfFiles, nil
}

// CountPDFs counts the PDF files under the directory.
func (s *Scanner) CountPDFs(directory string) (int, error) {
	files, err := s.FindPDFs(directory)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

func isPDFFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
