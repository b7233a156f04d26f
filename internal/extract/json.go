package extract

import (
	"encoding/json"
	"os"

	"finparse/stmt-ledger/internal/parsererror"
)

// jsonPage mirrors the payload an external extraction service emits per page.
type jsonPage struct {
	Text  string     `json:"text"`
	Table [][]string `json:"table"`
}

type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

// JSONExtractor reads a pre-extracted document payload. It serves callers
// that run their own extraction service and the test suites, which keep
// statement fixtures as plain JSON.
type JSONExtractor struct{}

// NewJSONExtractor creates a JSONExtractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract loads and decodes the payload. The password is ignored; JSON
// payloads are never encrypted.
func (e *JSONExtractor) Extract(path, password string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &parsererror.DocumentAccessError{Path: path, Reason: "cannot read file", Err: err}
	}

	var raw jsonDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &parsererror.DocumentAccessError{Path: path, Reason: "malformed document payload", Err: err}
	}

	doc := &Document{}
	for i, p := range raw.Pages {
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Text: p.Text, Table: Table(p.Table)})
	}
	return doc, nil
}
