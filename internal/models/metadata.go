package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// StatementPeriod is the date range a statement covers.
type StatementPeriod struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether neither bound was extracted.
func (p StatementPeriod) IsZero() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// AccountMetadata holds the document-level attributes pulled from the first
// page of a statement. It is derived once per parse and is not mutated after
// the opening/closing balances are back-filled from the reconciled ledger.
type AccountMetadata struct {
	AccountNo     string
	AccountType   string
	AccountStatus string
	Name          string
	Address       string
	Bank          string
	Branch        string
	IFSC          string
	MICR          string
	CustomerID    string
	Email         string
	Currency      string
	Period        StatementPeriod

	OpeningBalance    decimal.Decimal
	HasOpeningBalance bool
	ClosingBalance    decimal.Decimal
	HasClosingBalance bool
}

type periodJSON struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type accountMetadataJSON struct {
	AccountNo      string      `json:"accountNumber,omitempty"`
	AccountType    string      `json:"accountType,omitempty"`
	AccountStatus  string      `json:"accountStatus,omitempty"`
	Name           string      `json:"accountHolderName,omitempty"`
	Address        string      `json:"address,omitempty"`
	Bank           string      `json:"bankName,omitempty"`
	Branch         string      `json:"branch,omitempty"`
	IFSC           string      `json:"ifscCode,omitempty"`
	MICR           string      `json:"micrCode,omitempty"`
	CustomerID     string      `json:"customerId,omitempty"`
	Email          string      `json:"email,omitempty"`
	Currency       string      `json:"currency,omitempty"`
	Period         *periodJSON `json:"statementPeriod,omitempty"`
	OpeningBalance json.Number `json:"openingBalance,omitempty"`
	ClosingBalance json.Number `json:"closingBalance,omitempty"`
}

// MarshalJSON emits only the attributes that were actually extracted.
func (m AccountMetadata) MarshalJSON() ([]byte, error) {
	out := accountMetadataJSON{
		AccountNo:     m.AccountNo,
		AccountType:   m.AccountType,
		AccountStatus: m.AccountStatus,
		Name:          m.Name,
		Address:       m.Address,
		Bank:          m.Bank,
		Branch:        m.Branch,
		IFSC:          m.IFSC,
		MICR:          m.MICR,
		CustomerID:    m.CustomerID,
		Email:         m.Email,
		Currency:      m.Currency,
	}
	if !m.Period.IsZero() {
		p := &periodJSON{}
		if !m.Period.From.IsZero() {
			p.From = m.Period.From.Format(DateLayout)
		}
		if !m.Period.To.IsZero() {
			p.To = m.Period.To.Format(DateLayout)
		}
		out.Period = p
	}
	if m.HasOpeningBalance {
		out.OpeningBalance = json.Number(m.OpeningBalance.String())
	}
	if m.HasClosingBalance {
		out.ClosingBalance = json.Number(m.ClosingBalance.String())
	}
	return json.Marshal(out)
}
