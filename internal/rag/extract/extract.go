package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/pkg/logger_i"
)

var logger *logger_i.Logger

// SupportedType reports whether the extension (with or without the leading
// dot) maps to a known extractor.
func SupportedType(ext string) bool {
	switch normalizeExt(ext) {
	case ".pdf", ".docx", ".txt", ".rtf", ".odt", ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Text reads the file at path and returns its plain text content. The format
// is taken from the extension; a parse failure is an *domain.ExtractionError
// and is never retried under another format.
func Text(path string) (string, error) {
	logger = logger_i.NewLogger("Extraction ")
	ext := normalizeExt(filepath.Ext(path))
	logger.Debug("extracting file", "path", path, "type", ext)

	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".docx", ".txt", ".rtf", ".odt":
		return extractWithCat(path, ext)
	case ".csv":
		return extractCSV(path)
	case ".xlsx":
		return extractXLSX(path)
	case ".xls":
		return extractXLS(path)
	default:
		return "", &domain.ExtractionError{Format: ext, Err: errors.New("unsupported file type")}
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening pdf", "error", err)
		return "", &domain.ExtractionError{Format: ".pdf", Err: err}
	}

	var pages []string
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectPageExtract(page)
		if err != nil {
			// Skip the broken page, keep the rest of the document
			logger.Error("error parsing page content", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) != "" {
			pages = append(pages, content)
		}
	}
	if len(pages) == 0 {
		return "", &domain.ExtractionError{Format: ".pdf", Err: errors.New("no extractable text")}
	}
	return strings.Join(pages, "\n"), nil
}

// protectPageExtract guards against pdf.Page.GetPlainText hanging on
// malformed content streams.
func protectPageExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("page extraction timeout")
	}
}

func extractWithCat(path, ext string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("error extracting document content", "type", ext, "error", err)
		return "", &domain.ExtractionError{Format: ext, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.ExtractionError{Format: ext, Err: fmt.Errorf("empty document")}
	}
	return text, nil
}
