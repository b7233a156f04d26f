package dialect

import (
	"regexp"
	"strings"
)

// Kotak statements are table-oriented: transactions arrive as a cell grid
// with a "# | Date | Description | Chq/Ref | Withdrawal | Deposit | Balance"
// layout, dates in "07 May 2025" form, and SWEEP TRANSFER rows that move
// funds to a linked deposit facility.
func Kotak() *Descriptor {
	return &Descriptor{
		Name:             KotakName,
		BankName:         "Kotak Mahindra Bank",
		Currency:         "INR",
		TableDatePattern: regexp.MustCompile(`(?i)\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4}`),
		RowSkipMarkers:   []string{"Opening Balance", "End of Statement"},
		CreditKeywords:   CreditTable("neft cr", "received", "credit"),
		SweepAware:       true,
		MetadataRules:    kotakMetadataRules(),
		AddressBuilder:   kotakAddress,
	}
}

func kotakMetadataRules() []FieldRule {
	return []FieldRule{
		{Field: MetaAccountNumber, Pattern: regexp.MustCompile(`(?i)Account\s*No\.?\s*[:\s]*(\d{10,})`), Group: 1},
		{Field: MetaAccountType, Pattern: regexp.MustCompile(`(?i)Account\s*Type\s*[:\s]*(Savings|Current|Salary)`), Group: 1, PostProcess: strings.ToLower},
		{Field: MetaAccountStatus, Pattern: regexp.MustCompile(`(?i)Account\s*Status\s*[:\s]*(Individual|Joint|Corporate|Proprietary|Partnership)`), Group: 1, PostProcess: titleCase},
		{Field: MetaAccountStatus, Pattern: regexp.MustCompile(`(?i)Status\s*[:\s]*(Individual|Joint|Active|Dormant)`), Group: 1, PostProcess: titleCase},
		{Field: MetaHolderName, Pattern: regexp.MustCompile(`Account Statement\s*[\d\s\w-]+\n+(?:Account\s+)?([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`), Group: 1, PostProcess: kotakHolderName},
		{Field: MetaHolderName, Pattern: regexp.MustCompile(`\d{4}\s*\n+(?:Account\s+)?([A-Z][a-zA-Z]+\s+[A-Z][a-zA-Z]+)`), Group: 1, PostProcess: kotakHolderName},
		{Field: MetaIFSC, Pattern: regexp.MustCompile(`(?i)IFSC\s*Code\s*[:\s]*([A-Z]{4}0[A-Z0-9]{6})`), Group: 1},
		{Field: MetaMICR, Pattern: regexp.MustCompile(`(?i)MICR\s*[:\s]*(\d{9})`), Group: 1},
		{Field: MetaBranch, Pattern: regexp.MustCompile(`(?i)Branch\s*[:\s]*([A-Za-z\s]+?)(?:\n|Branch)`), Group: 1},
		{Field: MetaPeriodFrom, Pattern: kotakPeriodPattern, Group: 1},
		{Field: MetaPeriodTo, Pattern: kotakPeriodPattern, Group: 2},
		{Field: MetaOpeningBalance, Pattern: regexp.MustCompile(`(?im)Opening\s+Balance.*?([\d,]+\.\d{2})\s*$`), Group: 1, AllPages: true},
	}
}

var kotakPeriodPattern = regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})\s*[-–]\s*(\d{1,2}\s+[A-Za-z]+\s+\d{4})`)

// companyMarkers guard the name reversal: institutional account holders keep
// their printed word order.
var companyMarkers = []string{
	"TECHNOLOGIES", "CONSULTANT", "PRIVATE", "LIMITED", "LTD", "PVT",
	"SOLUTIONS", "SERVICES", "ENTERPRISES", "CORPORATION", "CORP",
	"INDUSTRIES", "TRADING", "EXPORTS", "IMPORTS", "LLC", "INC",
}

var accountPrefix = regexp.MustCompile(`(?i)^Account\s+`)

// kotakHolderName reorders "Last First" to "First Last". Kotak prints
// personal names surname-first; company names are left untouched.
func kotakHolderName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(accountPrefix.ReplaceAllString(s, ""))
	upper := strings.ToUpper(s)
	for _, marker := range companyMarkers {
		if strings.Contains(upper, marker) {
			return s
		}
	}
	parts := strings.Fields(s)
	switch len(parts) {
	case 2:
		return parts[1] + " " + parts[0]
	case 3:
		return parts[2] + " " + parts[1] + " " + parts[0]
	default:
		return s
	}
}

var (
	kotakAddressPattern = regexp.MustCompile(`(?i)([A-Za-z0-9][A-Za-z0-9\s,./\-]+\n(?:[A-Za-z0-9][A-Za-z0-9\s,./\-]+\n)*[A-Za-z\s]+[-–]\s*\d{6}\s*\n[A-Za-z\s]+[-–]\s*India)`)
	dateRangeLine       = regexp.MustCompile(`^\d{1,2}\s+\w+\s+\d{4}\s*[-–]`)

	kotakAddressSkip = []string{
		"Account No", "Account Type", "CRN", "Branch", "Phone",
		"Nominee", "Status", "IFSC", "MICR", "Statement",
	}
)

// kotakAddress pulls the address block (street lines, "City - 560102",
// "State - India") and drops interleaved account-detail lines.
func kotakAddress(text string) string {
	m := kotakAddressPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dateRangeLine.MatchString(line) {
			continue
		}
		skip := false
		for _, marker := range kotakAddressSkip {
			if strings.Contains(strings.ToLower(line), strings.ToLower(marker)) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return ""
	}

	address := strings.Join(kept, ", ")
	address = strings.ReplaceAll(address, ", .,", ",")
	address = strings.ReplaceAll(address, "., ", ", ")
	address = strings.ReplaceAll(address, ", ,", ",")
	return strings.Trim(address, ", .")
}
