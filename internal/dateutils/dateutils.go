// Package dateutils provides the date normalization used throughout the
// application. Statement documents mix several day-first formats, often with
// two-digit years; everything funnels through ParseDate / ParseDateHint.
package dateutils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"finparse/stmt-ledger/internal/parsererror"
)

// Date layout constants for the formats seen in statement documents. The
// day and month elements are non-padded so that "1 Apr 2025" and
// "01 Apr 2025" both parse against the same layout.
const (
	LayoutISO            = "2006-01-02"
	LayoutSlashShortYear = "2/1/06"
	LayoutSlashFullYear  = "2/1/2006"
	LayoutDashShortYear  = "2-1-06"
	LayoutDashFullYear   = "2-1-2006"
	LayoutMonthName      = "2 Jan 2006"
	LayoutMonthNameDash  = "2-Jan-2006"
	LayoutMonthNameShort = "2-Jan-06"
	LayoutMonthNameFull  = "2 January 2006"
	LayoutUS             = "1/2/2006"
)

// StatementFormats is the ordered list ParseDate walks. Day-first layouts
// come first; the order is part of the parsing contract.
var StatementFormats = []string{
	LayoutSlashShortYear,
	LayoutSlashFullYear,
	LayoutDashShortYear,
	LayoutDashFullYear,
	LayoutMonthName,
	LayoutMonthNameDash,
	LayoutMonthNameShort,
	LayoutMonthNameFull,
	LayoutISO,
	LayoutUS,
}

// hintLayouts maps the format names used in template mapping files to Go
// layouts.
var hintLayouts = map[string]string{
	"DD/MM/YY":    LayoutSlashShortYear,
	"DD/MM/YYYY":  LayoutSlashFullYear,
	"DD-MM-YY":    LayoutDashShortYear,
	"DD-MM-YYYY":  LayoutDashFullYear,
	"DD MMM YYYY": LayoutMonthName,
	"DD-MMM-YYYY": LayoutMonthNameDash,
	"DD-MMM-YY":   LayoutMonthNameShort,
	"MM/DD/YYYY":  LayoutUS,
	"YYYY-MM-DD":  LayoutISO,
}

var dateLikePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`),
	regexp.MustCompile(`^\d{2,4}[/-]\d{1,2}[/-]\d{1,2}$`),
	regexp.MustCompile(`^\d{1,2}[\s-][A-Za-z]{3,9}[\s-]\d{2,4}$`),
	regexp.MustCompile(`^[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4}$`),
}

// ParseDate parses a date string against StatementFormats in order and
// returns the parsed time plus the layout that matched. Two-digit years are
// taken to be in the 2000s: a parse landing before year 2000 is shifted
// forward 100 years, so "07/04/99" means 2099, not 1999.
func ParseDate(text string) (time.Time, string, error) {
	cleaned := CleanDateString(text)
	if cleaned == "" {
		return time.Time{}, "", &parsererror.ParseError{Field: "date", Value: text, Err: errors.New("empty string")}
	}

	for _, layout := range StatementFormats {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		return shiftTwoDigitYear(t, layout), layout, nil
	}
	return time.Time{}, "", &parsererror.ParseError{Field: "date", Value: text, Err: errors.New("no known layout matched")}
}

// ParseDateHint tries the hinted format first (a template-mapping name such
// as "DD/MM/YYYY"), then falls back to the full ordered list.
func ParseDateHint(text, hint string) (time.Time, error) {
	cleaned := CleanDateString(text)
	if cleaned == "" {
		return time.Time{}, &parsererror.ParseError{Field: "date", Value: text, Err: errors.New("empty string")}
	}

	if layout, ok := hintLayouts[hint]; ok {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return shiftTwoDigitYear(t, layout), nil
		}
	}
	t, _, err := ParseDate(cleaned)
	return t, err
}

// IsDateLike reports whether the text looks like a date without committing
// to a full parse. The table extractor and the template learner use this to
// locate date-bearing cells.
func IsDateLike(text string) bool {
	cleaned := CleanDateString(text)
	if cleaned == "" {
		return false
	}
	for _, re := range dateLikePatterns {
		if re.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(text string) string {
	text = strings.TrimSpace(text)
	return regexp.MustCompile(`\s+`).ReplaceAllString(text, " ")
}

// ToISODate formats a time as YYYY-MM-DD; zero times become "".
func ToISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutISO)
}

// shiftTwoDigitYear applies the 2000s assumption. Go resolves two-digit
// years into 1969-2068; years reported before 2000 get +100 so that the
// literal digits plus 2000 is what comes out.
func shiftTwoDigitYear(t time.Time, layout string) time.Time {
	if !strings.Contains(layout, "2006") && t.Year() < 2000 {
		return t.AddDate(100, 0, 0)
	}
	return t
}
