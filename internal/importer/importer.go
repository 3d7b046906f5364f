// Package importer extracts a title and plain-text body from an
// uploaded local file, used to seed a newly created remote document.
// Rich structure is deliberately not reconstructed: the body is
// inserted as plain text.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Content is the extracted seed for a new remote document.
type Content struct {
	Title string
	Body  string
}

// Extractor converts raw file bytes into seed content.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Content, error)
}

// SupportedExtensions lists file extensions this service can import.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// stem strips the extension from a filename for use as a fallback
// document title.
func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
