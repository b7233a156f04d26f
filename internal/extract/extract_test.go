package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/internal/parsererror"
)

func TestDocumentHelpers(t *testing.T) {
	doc := &Document{
		Pages: []Page{
			{Number: 1, Text: "Account Statement\nHDFC BANK", Table: Table{{"Date", "Narration"}}},
			{Number: 2, Text: "", Table: Table{{"a"}, {"b"}, {"c"}}},
			{Number: 3, Text: "closing page"},
		},
	}

	assert.Equal(t, 3, doc.PageCount())
	assert.Equal(t, "Account Statement\nHDFC BANK", doc.FirstPageText())
	assert.Len(t, doc.LargestTable(), 3)
	assert.Len(t, doc.Tables(), 2)

	var nilDoc *Document
	assert.Equal(t, 0, nilDoc.PageCount())
	assert.Equal(t, "", nilDoc.FirstPageText())
	assert.Empty(t, nilDoc.LargestTable())
}

func TestPageLines(t *testing.T) {
	p := Page{Text: "first line\n\n  second line  \n"}
	assert.Equal(t, []string{"first line", "second line"}, p.Lines())

	assert.Empty(t, Page{}.Lines())
}

func TestTableHelpers(t *testing.T) {
	tbl := Table{{"a", "b", "c"}, {"d"}}
	assert.False(t, tbl.IsEmpty())
	assert.Equal(t, 3, tbl.ColumnCount())

	assert.True(t, Table{}.IsEmpty())
	assert.Equal(t, 0, Table{}.ColumnCount())
}

func TestForPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantJSON bool
	}{
		{"JSON payload", "statement.json", true},
		{"Uppercase JSON", "STATEMENT.JSON", true},
		{"PDF", "statement.pdf", false},
		{"No extension", "statement", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := ForPath(tt.path)
			if tt.wantJSON {
				assert.IsType(t, &JSONExtractor{}, ext)
			} else {
				assert.IsType(t, &PDFExtractor{}, ext)
			}
		})
	}
}

func TestMockExtractor(t *testing.T) {
	doc := &Document{Pages: []Page{{Number: 1, Text: "hello"}}}
	m := NewMockExtractor(doc, nil)
	got, err := m.Extract("any.pdf", "")
	require.NoError(t, err)
	assert.Same(t, doc, got)

	boom := errors.New("boom")
	m = NewMockExtractor(nil, boom)
	_, err = m.Extract("any.pdf", "")
	assert.Equal(t, boom, err)
}

func TestJSONExtractor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.json")
	payload := `{
		"pages": [
			{"text": "HDFC BANK\nStatement of account", "table": [["Date", "Narration"], ["01/04/25", "UPI PAYMENT"]]},
			{"text": "page two"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	doc, err := NewJSONExtractor().Extract(path, "")
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, "HDFC BANK\nStatement of account", doc.Pages[0].Text)
	assert.Equal(t, Table{{"Date", "Narration"}, {"01/04/25", "UPI PAYMENT"}}, doc.Pages[0].Table)
	assert.True(t, doc.Pages[1].Table.IsEmpty())
}

func TestJSONExtractorErrors(t *testing.T) {
	var accessErr *parsererror.DocumentAccessError

	_, err := NewJSONExtractor().Extract(filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	assert.True(t, errors.As(err, &accessErr))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = NewJSONExtractor().Extract(path, "")
	require.Error(t, err)
	require.True(t, errors.As(err, &accessErr))
	assert.Contains(t, accessErr.Reason, "malformed")
}

func TestPDFExtractorMissingFile(t *testing.T) {
	_, err := NewPDFExtractor().Extract(filepath.Join(t.TempDir(), "missing.pdf"), "")
	require.Error(t, err)

	var accessErr *parsererror.DocumentAccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Contains(t, accessErr.Reason, "cannot open")
}

func TestPDFExtractorCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := NewPDFExtractor().Extract(path, "")
	require.Error(t, err)

	var accessErr *parsererror.DocumentAccessError
	assert.True(t, errors.As(err, &accessErr))
}
