// Package currencyutils provides amount normalization for statement values.
// Statement amounts arrive as grouped-digit strings with currency markers,
// DR/CR polarity suffixes, or a parenthesized-negative form.
package currencyutils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"finparse/stmt-ledger/internal/parsererror"
)

var (
	polaritySuffix  = regexp.MustCompile(`(?i)[\s.]*(DR|CR)\.?\s*$`)
	currencyMarkers = regexp.MustCompile(`(?i)(₹|RS\.?|INR|[$€£])`)

	// amountLikePatterns is the pattern family the template learner uses to
	// classify a column as amount-bearing: currency symbol, digit grouping
	// (Indian or western), DR/CR suffix, or parenthesized negative. Bare
	// short values like "123" or "45.00" also qualify; longer ungrouped
	// digit runs are plain numbers, not amounts.
	amountLikePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[₹$€£]\s*-?[\d,]+(\.\d{1,2})?$`),
		regexp.MustCompile(`^-?\d{1,3}(,\d{2,3})+(\.\d{1,2})?$`),
		regexp.MustCompile(`^-?\d{1,3}(\.\d{1,2})?$`),
		regexp.MustCompile(`(?i)^-?[\d,]+(\.\d{1,2})?\s*(CR|DR)\.?$`),
		regexp.MustCompile(`^\([₹$€£]?\s*[\d,]+(\.\d{1,2})?\)$`),
	}

	plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// ParseAmount normalizes an amount string to a decimal. It strips currency
// markers and whitespace, removes comma separators without validating their
// placement ("1,2,3.45" reads the same as "123.45"), honors a trailing DR/CR
// suffix (DR negative, CR positive) and the parenthesized-negative form.
// Empty input or non-numeric residue is an error.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, &parsererror.ParseError{Field: "amount", Value: text, Err: errors.New("empty string")}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if m := polaritySuffix.FindStringSubmatch(s); m != nil {
		if strings.EqualFold(m[1], "DR") {
			negative = true
		}
		s = s[:len(s)-len(m[0])]
	}

	s = currencyMarkers.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero, &parsererror.ParseError{Field: "amount", Value: text, Err: errors.New("no numeric content")}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Field: "amount", Value: text, Err: err}
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// IsAmountLike reports whether the text belongs to the amount pattern
// family. Used for column classification, not for extraction; ParseAmount
// accepts strictly more than this.
func IsAmountLike(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" {
		return false
	}
	for _, re := range amountLikePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsPlainNumber reports whether the text is an unadorned numeric value
// (reference numbers, counts). Amount-like strings take precedence in
// classification.
func IsPlainNumber(text string) bool {
	return plainNumber.MatchString(strings.TrimSpace(text))
}

// FormatAmount renders a decimal with two fixed places and an optional
// currency code prefix.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "INR":
		return "₹" + formatted
	default:
		return currency + " " + formatted
	}
}
