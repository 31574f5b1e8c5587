package models

// Statement is a decoded 074 record: the balance summary of one account
// statement.
//
// Balances and turnovers are unsigned magnitudes; the sign travels in the
// adjacent *Sign field ("+" or "-").
type Statement struct {
	RecordType         string  `json:"record_type" yaml:"record_type"`
	AccountNumber      string  `json:"account_number" yaml:"account_number"`
	AccountName        string  `json:"account_name" yaml:"account_name"`
	OldBalanceDate     *Date   `json:"old_balance_date" yaml:"old_balance_date"`
	OldBalance         float64 `json:"old_balance" yaml:"old_balance"`
	OldBalanceSign     string  `json:"old_balance_sign" yaml:"old_balance_sign"`
	NewBalance         float64 `json:"new_balance" yaml:"new_balance"`
	NewBalanceSign     string  `json:"new_balance_sign" yaml:"new_balance_sign"`
	DebitTurnover      float64 `json:"debit_turnover" yaml:"debit_turnover"`
	DebitTurnoverSign  string  `json:"debit_turnover_sign" yaml:"debit_turnover_sign"`
	CreditTurnover     float64 `json:"credit_turnover" yaml:"credit_turnover"`
	CreditTurnoverSign string  `json:"credit_turnover_sign" yaml:"credit_turnover_sign"`
	StatementNumber    string  `json:"statement_number" yaml:"statement_number"`
	AccountingDate     *Date   `json:"accounting_date" yaml:"accounting_date"`
	RawLine            string  `json:"raw_line" yaml:"raw_line"`
}

// Tag implements Record.
func (s *Statement) Tag() string { return TagStatement }

// SignedOldBalance returns the old balance with its sign applied.
func (s *Statement) SignedOldBalance() float64 { return applySign(s.OldBalance, s.OldBalanceSign) }

// SignedNewBalance returns the new balance with its sign applied.
func (s *Statement) SignedNewBalance() float64 { return applySign(s.NewBalance, s.NewBalanceSign) }

// SignedDebitTurnover returns the debit turnover with its sign applied.
func (s *Statement) SignedDebitTurnover() float64 {
	return applySign(s.DebitTurnover, s.DebitTurnoverSign)
}

// SignedCreditTurnover returns the credit turnover with its sign applied.
func (s *Statement) SignedCreditTurnover() float64 {
	return applySign(s.CreditTurnover, s.CreditTurnoverSign)
}

func applySign(amount float64, sign string) float64 {
	if sign == "-" {
		return -amount
	}
	return amount
}
