package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/parsererror"
)

var log = logging.GetLogger()

// cellGapThreshold is the horizontal distance (in PDF units) between two
// positioned words that marks a column boundary within a row.
const cellGapThreshold = 15.0

// PDFExtractor reads PDF statements with github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens the PDF, decrypting with the password when one is supplied,
// and materializes every page. Open, decryption, and reader failures map to
// parsererror.DocumentAccessError. The reader library panics on some
// malformed inputs; those surface as a DocumentAccessError too.
func (e *PDFExtractor) Extract(path, password string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &parsererror.DocumentAccessError{
				Path:   path,
				Reason: fmt.Sprintf("document reader fault: %v", r),
			}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, &parsererror.DocumentAccessError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close document",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, &parsererror.DocumentAccessError{Path: path, Reason: "cannot stat file", Err: err}
	}

	// The reader consults the password func only for encrypted files and
	// calls it again after a rejected attempt; returning "" on the second
	// call stops it from retrying forever.
	consulted := false
	attempted := false
	reader, err := pdf.NewReaderEncrypted(f, info.Size(), func() string {
		consulted = true
		if attempted || password == "" {
			return ""
		}
		attempted = true
		return password
	})
	if err != nil {
		reason := "cannot read document"
		switch {
		case consulted && password == "":
			reason = "password required"
		case consulted:
			reason = "incorrect password"
		}
		return nil, &parsererror.DocumentAccessError{Path: path, Reason: reason, Err: err}
	}

	doc = &Document{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, buildPage(page, i))
	}

	log.Debug("Extracted document",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldPage, Value: len(doc.Pages)})
	return doc, nil
}

// buildPage collects the page's positioned rows and derives both the plain
// text and the cell grid from the same word positions.
func buildPage(page pdf.Page, number int) Page {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return Page{Number: number}
	}

	var lines []string
	var grid Table
	for _, row := range rows {
		cells := splitRowIntoCells(row.Content)
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, strings.Join(cells, "  "))
		grid = append(grid, cells)
	}
	return Page{Number: number, Text: strings.Join(lines, "\n"), Table: grid}
}

// splitRowIntoCells orders the row's words left to right and starts a new
// cell wherever the horizontal gap to the previous word exceeds the
// threshold. Words whose width is unknown fall back to start-to-start gaps.
func splitRowIntoCells(words []pdf.Text) []string {
	positioned := make([]pdf.Text, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.S) != "" {
			positioned = append(positioned, w)
		}
	}
	if len(positioned) == 0 {
		return nil
	}
	sort.SliceStable(positioned, func(i, j int) bool {
		return positioned[i].X < positioned[j].X
	})

	var cells []string
	var cell strings.Builder
	var prevEnd float64
	for i, w := range positioned {
		if i > 0 {
			if w.X-prevEnd > cellGapThreshold {
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			} else if cell.Len() > 0 {
				cell.WriteString(" ")
			}
		}
		cell.WriteString(w.S)
		prevEnd = w.X + w.W
		if prevEnd < w.X {
			prevEnd = w.X
		}
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}
