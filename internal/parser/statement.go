package parser

import "github.com/Spoje-NET/abo-parser/internal/models"

// Statement (074) layout. The tag occupies [0,3).
var statementLayout = struct {
	AccountNumber, AccountName                 span
	OldBalanceDate, OldBalance, OldBalanceSign span
	NewBalance, NewBalanceSign                 span
	DebitTurnover, DebitTurnoverSign           span
	CreditTurnover, CreditTurnoverSign         span
	StatementNumber, AccountingDate            span
}{
	AccountNumber:      span{3, 19},
	AccountName:        span{19, 39},
	OldBalanceDate:     span{41, 47},
	OldBalance:         span{47, 61},
	OldBalanceSign:     span{61, 62},
	NewBalance:         span{62, 76},
	NewBalanceSign:     span{76, 77},
	DebitTurnover:      span{77, 91},
	DebitTurnoverSign:  span{91, 92},
	CreditTurnover:     span{92, 106},
	CreditTurnoverSign: span{106, 107},
	StatementNumber:    span{107, 110},
	AccountingDate:     span{110, 116},
}

// decodeStatement maps a 074 line onto a Statement. Short lines leave the
// missing trailing fields empty or nil.
func decodeStatement(raw string) *models.Statement {
	l := recordLine(raw)
	f := statementLayout

	return &models.Statement{
		RecordType:         l.field(tagSpan),
		AccountNumber:      l.text(f.AccountNumber),
		AccountName:        l.text(f.AccountName),
		OldBalanceDate:     l.date(f.OldBalanceDate),
		OldBalance:         l.amount(f.OldBalance),
		OldBalanceSign:     l.text(f.OldBalanceSign),
		NewBalance:         l.amount(f.NewBalance),
		NewBalanceSign:     l.text(f.NewBalanceSign),
		DebitTurnover:      l.amount(f.DebitTurnover),
		DebitTurnoverSign:  l.text(f.DebitTurnoverSign),
		CreditTurnover:     l.amount(f.CreditTurnover),
		CreditTurnoverSign: l.text(f.CreditTurnoverSign),
		StatementNumber:    l.text(f.StatementNumber),
		AccountingDate:     l.date(f.AccountingDate),
		RawLine:            raw,
	}
}
