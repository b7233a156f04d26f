// Package dialect defines bank statement layouts as data. A Descriptor
// carries everything the extraction engine needs to read one bank's
// statements: the line grammar, the table header vocabulary, the date-cell
// matcher, the debit/credit keyword table, and the first-page metadata
// rules. New banks are new descriptors, not new code paths.
package dialect

import (
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Built-in dialect names.
const (
	HDFCName    = "hdfc"
	KotakName   = "kotak"
	GenericName = "generic"
)

// Defaults applied by Registry.Register when a descriptor leaves the field
// zero.
const (
	DefaultRefMinDigits = 10
	DefaultMinLineYield = 5
)

// DefaultHeaderKeywords is the header detection vocabulary shared by the
// table extractor and the template engine.
var DefaultHeaderKeywords = []string{
	"date", "amount", "balance", "narration", "description",
	"debit", "credit", "reference", "particulars", "withdrawal", "deposit",
}

// Metadata field names used by FieldRule. They match the wire names of
// AccountMetadata where one exists; the period bounds and opening balance
// get their own rule targets because they are typed, not plain strings.
const (
	MetaAccountNumber  = "accountNumber"
	MetaAccountType    = "accountType"
	MetaAccountStatus  = "accountStatus"
	MetaHolderName     = "accountHolderName"
	MetaBranch         = "branch"
	MetaIFSC           = "ifscCode"
	MetaMICR           = "micrCode"
	MetaCustomerID     = "customerId"
	MetaEmail          = "email"
	MetaPeriodFrom     = "periodFrom"
	MetaPeriodTo       = "periodTo"
	MetaOpeningBalance = "openingBalance"
)

// FieldRule extracts one metadata field from page text. Rules for the same
// field are tried in order; the first match wins.
type FieldRule struct {
	Field       string
	Pattern     *regexp.Regexp
	Group       int
	StripSpaces bool                // match against text with spaces removed
	AllPages    bool                // search every page, not just the first
	PostProcess func(string) string
}

// Descriptor is one bank's statement layout.
type Descriptor struct {
	Name     string
	BankName string
	Currency string

	// Line extractor grammar. A nil LineDatePattern disables the line pass
	// for table-first layouts.
	LineDatePattern *regexp.Regexp
	RefMinDigits    int
	LineSkipMarkers []string

	// Table extractor grammar. A nil TableDatePattern falls back to the
	// shared date-shape heuristic.
	HeaderKeywords   []string
	TableDatePattern *regexp.Regexp
	RowSkipMarkers   []string

	CreditKeywords *RuleTable

	// MinLineYield is the line-pass confidence threshold below which the
	// table pass runs as a fallback.
	MinLineYield int

	SweepAware        bool
	TypeOnlyReconcile bool

	MetadataRules  []FieldRule
	AddressBuilder func(text string) string
}

// Registry holds the known dialects.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry builds a registry with the built-in dialects.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Descriptor)}
	r.Register(HDFC())
	r.Register(Kotak())
	r.Register(Generic())
	return r
}

// Register adds a descriptor, filling defaulted fields.
func (r *Registry) Register(d *Descriptor) {
	if d.RefMinDigits == 0 {
		d.RefMinDigits = DefaultRefMinDigits
	}
	if d.MinLineYield == 0 {
		d.MinLineYield = DefaultMinLineYield
	}
	if len(d.HeaderKeywords) == 0 {
		d.HeaderKeywords = DefaultHeaderKeywords
	}
	r.byName[d.Name] = d
}

// Get returns the named dialect.
func (r *Registry) Get(name string) (*Descriptor, error) {
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown dialect '%s' (known: %v)", name, r.Names())
}

// Names returns the registered dialect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the generic dialect.
func (r *Registry) Default() *Descriptor {
	return r.byName[GenericName]
}

// ForBank maps a detected bank identifier to a dialect, falling back to
// generic for banks without a dedicated descriptor.
func (r *Registry) ForBank(bank string) *Descriptor {
	if d, ok := r.byName[bank]; ok {
		return d
	}
	return r.Default()
}

// titleCase capitalizes each word, lowercasing the rest.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
