package models

// Accounting codes carried at offset 60 of a 075 record.
const (
	AccountingDebit          = "1"
	AccountingCredit         = "2"
	AccountingDebitReversal  = "4"
	AccountingCreditReversal = "5"
)

// Transaction is a decoded 075 record.
type Transaction struct {
	RecordType     string     `json:"record_type" yaml:"record_type"`
	Format         Format     `json:"format" yaml:"format"`
	AccountNumber  string     `json:"account_number" yaml:"account_number"`
	CounterAccount string     `json:"counter_account" yaml:"counter_account"`
	DocumentNumber string     `json:"document_number" yaml:"document_number"`
	Amount         float64    `json:"amount" yaml:"amount"`
	AccountingCode string     `json:"accounting_code" yaml:"accounting_code"`
	VariableSymbol string     `json:"variable_symbol" yaml:"variable_symbol"`
	ConstantSymbol string     `json:"constant_symbol" yaml:"constant_symbol"`
	SpecificSymbol string     `json:"specific_symbol" yaml:"specific_symbol"`
	ValuationDate  *Date      `json:"valuation_date" yaml:"valuation_date"`
	AdditionalInfo string     `json:"additional_info" yaml:"additional_info"`
	ChangeCode     string     `json:"change_code" yaml:"change_code"`
	DataType       string     `json:"data_type" yaml:"data_type"`
	DueDate        *Date      `json:"due_date" yaml:"due_date"`
	RawLine        string     `json:"raw_line" yaml:"raw_line"`
	Extension      *Extension `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// Extension holds the optional tail of an extended 075 record. A nil
// field was not physically present on the line.
type Extension struct {
	Message1                *string  `json:"message_1,omitempty" yaml:"message_1,omitempty"`
	Message2                *string  `json:"message_2,omitempty" yaml:"message_2,omitempty"`
	Message3                *string  `json:"message_3,omitempty" yaml:"message_3,omitempty"`
	Message4                *string  `json:"message_4,omitempty" yaml:"message_4,omitempty"`
	SenderMessage           *string  `json:"sender_message,omitempty" yaml:"sender_message,omitempty"`
	DebitedDate             *Date    `json:"debited_date,omitempty" yaml:"debited_date,omitempty"`
	ItemDescription         *string  `json:"item_description,omitempty" yaml:"item_description,omitempty"`
	IdentificationReference *string  `json:"identification_reference,omitempty" yaml:"identification_reference,omitempty"`
	IsoAmount               *float64 `json:"iso_amount,omitempty" yaml:"iso_amount,omitempty"`
	IsoCurrency             *string  `json:"iso_currency,omitempty" yaml:"iso_currency,omitempty"`
	CounterAccountName      *string  `json:"counter_account_name,omitempty" yaml:"counter_account_name,omitempty"`
	Unparsed                *string  `json:"unparsed,omitempty" yaml:"unparsed,omitempty"`
}

// Tag implements Record.
func (t *Transaction) Tag() string { return TagTransaction }

// IsCredit reports whether the item belongs to the credit side.
func (t *Transaction) IsCredit() bool {
	return t.AccountingCode == AccountingCredit || t.AccountingCode == AccountingCreditReversal
}

// IsReversal reports whether the item cancels an earlier booking.
func (t *Transaction) IsReversal() bool {
	return t.AccountingCode == AccountingDebitReversal || t.AccountingCode == AccountingCreditReversal
}

// SignedAmount returns the amount as it moves the account balance: debits
// and reversed credits are negative, credits and reversed debits positive.
// Unknown accounting codes leave the amount unsigned.
func (t *Transaction) SignedAmount() float64 {
	switch t.AccountingCode {
	case AccountingDebit, AccountingCreditReversal:
		return -t.Amount
	default:
		return t.Amount
	}
}

// Messages returns the non-empty message lines of an extended record.
func (t *Transaction) Messages() []string {
	if t.Extension == nil {
		return nil
	}
	var out []string
	for _, m := range []*string{t.Extension.Message1, t.Extension.Message2, t.Extension.Message3, t.Extension.Message4} {
		if m != nil && *m != "" {
			out = append(out, *m)
		}
	}
	return out
}

// CounterAccountName returns the extended counter-account name, or "".
func (t *Transaction) CounterAccountName() string {
	if t.Extension == nil || t.Extension.CounterAccountName == nil {
		return ""
	}
	return *t.Extension.CounterAccountName
}
