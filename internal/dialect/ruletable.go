package dialect

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"finparse/stmt-ledger/internal/models"
)

// Rule maps a description substring to an entry type. Rules are ordered;
// earlier rules win when several match.
type Rule struct {
	Pattern string
	Kind    models.EntryType
}

// RuleTable classifies transaction descriptions with a single Aho-Corasick
// pass over an enumerated rule list. The table is immutable after
// construction and safe for concurrent use.
type RuleTable struct {
	rules    []Rule
	fallback models.EntryType
	matcher  *ahocorasick.Matcher
}

// NewRuleTable compiles the rules into a matcher. Pattern matching is
// case-insensitive; fallback is returned when no rule matches.
func NewRuleTable(fallback models.EntryType, rules ...Rule) *RuleTable {
	t := &RuleTable{rules: rules, fallback: fallback}
	if len(rules) == 0 {
		return t
	}
	patterns := make([][]byte, len(rules))
	for i, r := range rules {
		patterns[i] = []byte(strings.ToLower(r.Pattern))
	}
	t.matcher = ahocorasick.NewMatcher(patterns)
	return t
}

// CreditTable builds a table that classifies descriptions containing any of
// the markers as credits and everything else as debits.
func CreditTable(markers ...string) *RuleTable {
	rules := make([]Rule, len(markers))
	for i, m := range markers {
		rules[i] = Rule{Pattern: m, Kind: models.EntryCredit}
	}
	return NewRuleTable(models.EntryDebit, rules...)
}

// Classify returns the kind of the highest-priority matching rule, or the
// fallback when nothing matches.
func (t *RuleTable) Classify(text string) models.EntryType {
	if t == nil {
		return models.EntryDebit
	}
	if t.matcher == nil {
		return t.fallback
	}
	hits := t.matcher.MatchThreadSafe([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return t.fallback
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h < best {
			best = h
		}
	}
	return t.rules[best].Kind
}

// Rules returns the table's rule list in priority order.
func (t *RuleTable) Rules() []Rule {
	if t == nil {
		return nil
	}
	return t.rules
}
