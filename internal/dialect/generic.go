package dialect

import (
	"regexp"
	"strings"
)

// Generic is the fallback dialect for statements from banks without a
// dedicated descriptor. It runs both extractors with a permissive line
// grammar and the union credit-keyword table; a nil TableDatePattern makes
// the table pass use the shared date-shape heuristic.
func Generic() *Descriptor {
	return &Descriptor{
		Name:            GenericName,
		Currency:        "INR",
		LineDatePattern: regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(.+)$`),
		LineSkipMarkers: []string{
			"Narration", "Statement", "Opening Balance",
			"Closing balance", "End of Statement",
		},
		RowSkipMarkers: []string{"Opening Balance", "End of Statement"},
		CreditKeywords: CreditTable(
			"neft cr", "neftcr", "credit", "received", "interest paid", "tpt-",
		),
		SweepAware:    true,
		MetadataRules: genericMetadataRules(),
	}
}

func genericMetadataRules() []FieldRule {
	return []FieldRule{
		{Field: MetaAccountNumber, Pattern: regexp.MustCompile(`(?i)Account\s*No\.?\s*[:\s]*(\d{10,})`), Group: 1},
		{Field: MetaAccountType, Pattern: regexp.MustCompile(`(?i)Account\s*Type\s*[:\s]*(Savings|Current|Salary)`), Group: 1, PostProcess: strings.ToLower},
		{Field: MetaIFSC, Pattern: regexp.MustCompile(`(?i)IFSC\s*(?:Code)?\s*[:\s]*([A-Z]{4}0[A-Z0-9]{6})`), Group: 1},
		{Field: MetaMICR, Pattern: regexp.MustCompile(`(?i)MICR\s*(?:Code)?\s*[:\s]*(\d{9})`), Group: 1},
		{Field: MetaEmail, Pattern: regexp.MustCompile(`(?i)Email\s*[:\s]*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`), Group: 1, PostProcess: strings.ToLower},
		{Field: MetaPeriodFrom, Pattern: genericPeriodPattern, Group: 1},
		{Field: MetaPeriodTo, Pattern: genericPeriodPattern, Group: 2},
		{Field: MetaOpeningBalance, Pattern: regexp.MustCompile(`(?im)Opening\s+Balance.*?([\d,]+\.\d{2})\s*$`), Group: 1, AllPages: true},
	}
}

var genericPeriodPattern = regexp.MustCompile(`(?i)From\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*To\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
