package engine

import (
	"strings"

	"finparse/stmt-ledger/internal/currencyutils"
	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/models"
)

// ExtractMetadata applies the dialect's field rules to the document text.
// Rules for the same field run in order and the first one that produces a
// usable value wins; a rule whose value fails typed parsing (dates, the
// opening balance) does not block later rules for that field. Account
// metadata lives on the first page on every supported layout; rules marked
// AllPages scan the whole document instead.
func ExtractMetadata(doc *extract.Document, d *dialect.Descriptor) models.AccountMetadata {
	meta := models.AccountMetadata{
		Bank:     d.BankName,
		Currency: d.Currency,
	}
	if doc == nil {
		return meta
	}

	firstPage := doc.FirstPageText()
	allText := doc.Text()

	done := make(map[string]bool, len(d.MetadataRules))
	for _, rule := range d.MetadataRules {
		if done[rule.Field] {
			continue
		}
		text := firstPage
		if rule.AllPages {
			text = allText
		}
		if rule.StripSpaces {
			text = strings.ReplaceAll(text, " ", "")
		}
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil || rule.Group >= len(m) {
			continue
		}
		value := strings.TrimSpace(m[rule.Group])
		if rule.PostProcess != nil {
			value = strings.TrimSpace(rule.PostProcess(value))
		}
		if value == "" {
			continue
		}
		if setField(&meta, rule.Field, value) {
			done[rule.Field] = true
		}
	}

	if d.AddressBuilder != nil {
		meta.Address = d.AddressBuilder(firstPage)
	}
	return meta
}

// setField assigns one extracted value, parsing the typed fields. A false
// return means the value was unusable and the field stays open.
func setField(meta *models.AccountMetadata, field, value string) bool {
	switch field {
	case dialect.MetaAccountNumber:
		meta.AccountNo = value
	case dialect.MetaAccountType:
		meta.AccountType = value
	case dialect.MetaAccountStatus:
		meta.AccountStatus = value
	case dialect.MetaHolderName:
		meta.Name = value
	case dialect.MetaBranch:
		meta.Branch = value
	case dialect.MetaIFSC:
		meta.IFSC = value
	case dialect.MetaMICR:
		meta.MICR = value
	case dialect.MetaCustomerID:
		meta.CustomerID = value
	case dialect.MetaEmail:
		meta.Email = value
	case dialect.MetaPeriodFrom:
		t, _, err := dateutils.ParseDate(value)
		if err != nil {
			return false
		}
		meta.Period.From = t
	case dialect.MetaPeriodTo:
		t, _, err := dateutils.ParseDate(value)
		if err != nil {
			return false
		}
		meta.Period.To = t
	case dialect.MetaOpeningBalance:
		v, err := currencyutils.ParseAmount(value)
		if err != nil {
			return false
		}
		meta.OpeningBalance = v
		meta.HasOpeningBalance = true
	default:
		return false
	}
	return true
}

// backfillBalances completes the opening/closing balances from the final
// transaction sequence. An opening balance found by a metadata rule is kept;
// otherwise it is derived by undoing the first transaction's effect on its
// balance. The closing balance is the last transaction's (sweep-adjusted)
// balance.
func backfillBalances(meta *models.AccountMetadata, txns []models.Transaction) {
	if len(txns) == 0 {
		return
	}
	if first := txns[0]; !meta.HasOpeningBalance && first.HasBalance {
		if first.IsDebit() {
			meta.OpeningBalance = first.Balance.Add(first.Amount)
		} else {
			meta.OpeningBalance = first.Balance.Sub(first.Amount)
		}
		meta.HasOpeningBalance = true
	}
	if last := txns[len(txns)-1]; last.HasBalance {
		meta.ClosingBalance = last.Balance
		meta.HasClosingBalance = true
	}
}
