package dialect

import (
	"regexp"
	"strings"
)

// HDFC statements are line-oriented: each transaction is one text line of
// the form DATE NARRATION REFERENCE VALUE-DATE [WITHDRAWAL] [DEPOSIT]
// BALANCE. Amount columns are trusted as printed; reconciliation only
// corrects the debit/credit type.
func HDFC() *Descriptor {
	return &Descriptor{
		Name:            HDFCName,
		BankName:        "HDFC Bank",
		Currency:        "INR",
		LineDatePattern: regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(.+)$`),
		LineSkipMarkers: []string{
			"Narration", "PageNo", "HDFC Bank", "Statement",
			"Closing balance", "Contents of", "Registered Office",
		},
		TableDatePattern: regexp.MustCompile(`^\d{2}/\d{2}/\d{2}`),
		RowSkipMarkers:   []string{"Narration", "Date"},
		CreditKeywords: CreditTable(
			"neft cr", "credit", "received", "interest paid", "tpt-", "neftcr",
		),
		TypeOnlyReconcile: true,
		MetadataRules:     hdfcMetadataRules(),
		AddressBuilder:    hdfcAddress,
	}
}

func hdfcMetadataRules() []FieldRule {
	return []FieldRule{
		{Field: MetaAccountNumber, Pattern: regexp.MustCompile(`AccountNo\s*:\s*(\d{10,})`), Group: 1, StripSpaces: true},
		{Field: MetaAccountNumber, Pattern: regexp.MustCompile(`(?i)Account\s*No\.?\s*[:\s]*(\d{10,})`), Group: 1},
		{Field: MetaAccountType, Pattern: regexp.MustCompile(`AccountType\s*:\s*([A-Z0-9\-/()\s]+)`), Group: 1, PostProcess: hdfcAccountType},
		{Field: MetaAccountStatus, Pattern: regexp.MustCompile(`AccountStatus\s*:\s*(\w+)`), Group: 1},
		{Field: MetaHolderName, Pattern: regexp.MustCompile(`State\s*:\s*[A-Z]+\s*\n((?:MR\.?|MRS\.?|MS\.?)\s*[A-Z][A-Z]+)`), Group: 1, PostProcess: hdfcHolderName},
		{Field: MetaHolderName, Pattern: regexp.MustCompile(`(MR\.?|MRS\.?|MS\.?)\s*([A-Z][A-Z]+)(?:\s*\n|[A-Z])`), Group: 2, PostProcess: hdfcHolderName},
		{Field: MetaIFSC, Pattern: regexp.MustCompile(`(?i)IFSC\s*:\s*([A-Z]{4}0[A-Z0-9]{6})`), Group: 1},
		{Field: MetaMICR, Pattern: regexp.MustCompile(`(?i)MICR\s*:\s*(\d{9})`), Group: 1},
		{Field: MetaBranch, Pattern: regexp.MustCompile(`AccountBranch\s*:\s*([A-Z]+)`), Group: 1, PostProcess: spacedTitle},
		{Field: MetaCustomerID, Pattern: regexp.MustCompile(`CustID\s*:\s*(\d+)`), Group: 1},
		{Field: MetaEmail, Pattern: regexp.MustCompile(`Email\s*:\s*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`), Group: 1, PostProcess: strings.ToLower},
		{Field: MetaPeriodFrom, Pattern: hdfcPeriodPattern, Group: 1},
		{Field: MetaPeriodTo, Pattern: hdfcPeriodPattern, Group: 2},
	}
}

var hdfcPeriodPattern = regexp.MustCompile(`From\s*:\s*(\d{1,2}/\d{1,2}/\d{4})\s*To\s*:\s*(\d{1,2}/\d{1,2}/\d{4})`)

// hdfcAccountType normalizes the raw product label ("SAVINGSA/C-SBMAX(193)")
// to a simple category where one is recognizable.
func hdfcAccountType(s string) string {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "SAVING"):
		return "savings"
	case strings.Contains(upper, "CURRENT"):
		return "current"
	default:
		return s
	}
}

var (
	// longest alternative first: leftmost-first matching would otherwise
	// strip only the "MR" of "MRS."
	titlePrefix   = regexp.MustCompile(`(?i)^(?:MRS|MS|MR)\.?\s*`)
	wordBoundary  = regexp.MustCompile(`([A-Z][a-z]+)([A-Z])`)
	branchLowerUp = regexp.MustCompile(`([a-z])([A-Z])`)
	branchCapsRun = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
)

// hdfcHolderName strips the salutation and title-cases the remainder.
// Statement rendering drops the space between first and last name
// (MR. GAURAVCHANCHAL); a mixed-case boundary is re-split when present,
// otherwise the concatenated form is kept rather than guessed apart.
func hdfcHolderName(s string) string {
	s = strings.TrimSpace(titlePrefix.ReplaceAllString(strings.TrimSpace(s), ""))
	if !strings.Contains(s, " ") && len(s) > 5 {
		s = wordBoundary.ReplaceAllString(s, "$1 $2")
	}
	return strings.TrimSpace(titleCase(s))
}

// spacedTitle inserts spaces at case boundaries and title-cases.
func spacedTitle(s string) string {
	s = branchLowerUp.ReplaceAllString(s, "$1 $2")
	s = branchCapsRun.ReplaceAllString(s, "$1 $2")
	return titleCase(s)
}

var (
	hdfcStreetPattern = regexp.MustCompile(`(?i)(\d+[A-Z0-9,/\s]+(?:AVENUE|ROAD|STREET|RESIDENCY|LAYOUT|PHASE|GATE)[A-Z0-9,/\s]*)`)
	hdfcCityPattern   = regexp.MustCompile(`City\s*:\s*([A-Z]+\d*)`)
	hdfcStatePattern  = regexp.MustCompile(`State\s*:\s*([A-Z]+)`)
	digitRun          = regexp.MustCompile(`([0-9]+)`)
	spaceRun          = regexp.MustCompile(`\s+`)
	trailingDigits    = regexp.MustCompile(`(\d+)$`)
)

// hdfcAddress reassembles the address from the fragmented first-page text:
// street line, then City:/State: fields (the city often has the pincode
// fused to it, e.g. BENGALURU560102).
func hdfcAddress(text string) string {
	var parts []string

	if m := hdfcStreetPattern.FindStringSubmatch(text); m != nil {
		street := digitRun.ReplaceAllString(strings.TrimSpace(m[1]), " $1 ")
		street = spaceRun.ReplaceAllString(street, " ")
		parts = append(parts, strings.TrimSpace(street))
	}
	if m := hdfcCityPattern.FindStringSubmatch(text); m != nil {
		city := trailingDigits.ReplaceAllString(m[1], " $1")
		parts = append(parts, titleCase(city))
	}
	if m := hdfcStatePattern.FindStringSubmatch(text); m != nil {
		parts = append(parts, titleCase(m[1]))
	}
	return strings.Join(parts, ", ")
}
