package extract

import (
	"path/filepath"
	"strings"
)

// Extractor materializes a document at the given path. The password is
// consulted only for encrypted inputs; implementations must release any
// opened handle before returning.
type Extractor interface {
	Extract(path, password string) (*Document, error)
}

// ForPath selects an extractor by file extension. Pre-extracted JSON
// documents bypass the PDF reader; everything else is treated as PDF.
func ForPath(path string) Extractor {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONExtractor()
	}
	return NewPDFExtractor()
}

// MockExtractor returns predefined content instead of reading a file.
type MockExtractor struct {
	Doc *Document
	Err error
}

// NewMockExtractor creates a MockExtractor with the given document and error.
func NewMockExtractor(doc *Document, err error) *MockExtractor {
	return &MockExtractor{Doc: doc, Err: err}
}

// Extract returns the predefined document or error.
func (m *MockExtractor) Extract(path, password string) (*Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Doc, nil
}
