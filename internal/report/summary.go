package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// Summary aggregates a parsed document for display.
type Summary struct {
	Format       models.Format   `json:"format" yaml:"format"`
	Statements   int             `json:"statements" yaml:"statements"`
	Transactions int             `json:"transactions" yaml:"transactions"`
	RawRecords   int             `json:"raw_records" yaml:"raw_records"`
	Unrecognized int             `json:"unrecognized" yaml:"unrecognized"`
	CreditCount  int             `json:"credit_count" yaml:"credit_count"`
	DebitCount   int             `json:"debit_count" yaml:"debit_count"`
	Unclassified int             `json:"unclassified" yaml:"unclassified"`
	Credit       decimal.Decimal `json:"credit" yaml:"credit"`
	Debit        decimal.Decimal `json:"debit" yaml:"debit"`
	Net          decimal.Decimal `json:"net" yaml:"net"`
	Accounts     []string        `json:"accounts" yaml:"accounts"`
}

// Summarize totals the transactions of doc by their effect on the balance.
// Amounts are summed as decimals so that many small items do not drift.
func Summarize(doc *models.ParsedDocument) Summary {
	s := Summary{
		Format:       doc.Format,
		Statements:   len(doc.Statements),
		Transactions: len(doc.Transactions),
		RawRecords:   len(doc.RawRecords),
		Credit:       decimal.Zero,
		Debit:        decimal.Zero,
		Accounts:     []string{},
	}

	for _, r := range doc.RawRecords {
		if r.RecordType != models.TagStatement && r.RecordType != models.TagTransaction {
			s.Unrecognized++
		}
	}

	accounts := map[string]struct{}{}
	for _, st := range doc.Statements {
		if st.AccountNumber != "" {
			accounts[st.AccountNumber] = struct{}{}
		}
	}

	for i := range doc.Transactions {
		tx := &doc.Transactions[i]
		if tx.AccountNumber != "" {
			accounts[tx.AccountNumber] = struct{}{}
		}

		// Items with a blank or unknown accounting code have no side and
		// stay out of the totals.
		switch tx.AccountingCode {
		case models.AccountingDebit, models.AccountingCreditReversal:
			s.Debit = s.Debit.Add(Amount(tx.Amount))
			s.DebitCount++
		case models.AccountingCredit, models.AccountingDebitReversal:
			s.Credit = s.Credit.Add(Amount(tx.Amount))
			s.CreditCount++
		default:
			s.Unclassified++
		}
	}
	s.Net = s.Credit.Sub(s.Debit)

	for acc := range accounts {
		s.Accounts = append(s.Accounts, acc)
	}
	sort.Strings(s.Accounts)

	return s
}

// Amount converts a decoded amount to a decimal with two fraction digits.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
