package parser

import "github.com/Spoje-NET/abo-parser/internal/models"

// Basic transaction (075) layout. The extended layout shares this prefix.
var transactionLayout = struct {
	AccountNumber, CounterAccount, DocumentNumber  span
	Amount, AccountingCode                         span
	VariableSymbol, ConstantSymbol, SpecificSymbol span
	ValuationDate, AdditionalInfo                  span
	ChangeCode, DataType, DueDate                  span
}{
	AccountNumber:  span{3, 19},
	CounterAccount: span{19, 35},
	DocumentNumber: span{35, 48},
	Amount:         span{48, 60},
	AccountingCode: span{60, 61},
	VariableSymbol: span{61, 71},
	ConstantSymbol: span{71, 81},
	SpecificSymbol: span{81, 91},
	ValuationDate:  span{91, 97},
	AdditionalInfo: span{97, 117},
	ChangeCode:     span{117, 118},
	DataType:       span{118, 122},
	DueDate:        span{122, 128},
}

// Extended block: fields follow each other from offset 128 in this order.
const (
	extensionStart = 128

	messageWidth                 = 35
	senderMessageWidth           = 35
	debitedDateWidth             = 6
	itemDescriptionWidth         = 25
	identificationReferenceWidth = 16
	isoAmountWidth               = 15
	isoCurrencyWidth             = 3
	counterAccountNameWidth      = 35
)

// extensionCursor hands out consecutive fields of the extended block. The
// first field the line cannot hold in full is absent (nil), and so is every
// field after it.
type extensionCursor struct {
	line      recordLine
	offset    int
	exhausted bool
}

func (c *extensionCursor) next(width int) (span, bool) {
	s := span{c.offset, c.offset + width}
	if c.exhausted || !c.line.covers(s) {
		c.exhausted = true
		return s, false
	}
	c.offset = s.end
	return s, true
}

func (c *extensionCursor) text(width int) *string {
	s, ok := c.next(width)
	if !ok {
		return nil
	}
	v := c.line.text(s)
	return &v
}

func (c *extensionCursor) date(width int) *models.Date {
	s, ok := c.next(width)
	if !ok {
		return nil
	}
	return c.line.date(s)
}

func (c *extensionCursor) amount(width int) *float64 {
	s, ok := c.next(width)
	if !ok {
		return nil
	}
	v := c.line.amount(s)
	return &v
}

// rest returns the trimmed text from where decoding stopped, or nil.
func (c *extensionCursor) rest() *string {
	v := c.line.text(span{c.offset, len(c.line)})
	if v == "" {
		return nil
	}
	return &v
}

// decodeTransaction maps a 075 line onto a Transaction in the given layout.
func decodeTransaction(raw string, format models.Format) *models.Transaction {
	l := recordLine(raw)
	t := decodeBasicTransaction(l)
	t.Format = format
	if format == models.FormatExtended {
		t.Extension = decodeExtension(l)
	}
	return t
}

func decodeBasicTransaction(l recordLine) *models.Transaction {
	f := transactionLayout

	return &models.Transaction{
		RecordType:     l.field(tagSpan),
		AccountNumber:  l.text(f.AccountNumber),
		CounterAccount: l.text(f.CounterAccount),
		DocumentNumber: l.text(f.DocumentNumber),
		Amount:         l.amount(f.Amount),
		AccountingCode: l.text(f.AccountingCode),
		VariableSymbol: l.text(f.VariableSymbol),
		ConstantSymbol: l.text(f.ConstantSymbol),
		SpecificSymbol: l.text(f.SpecificSymbol),
		ValuationDate:  l.date(f.ValuationDate),
		AdditionalInfo: l.text(f.AdditionalInfo),
		ChangeCode:     l.text(f.ChangeCode),
		DataType:       l.text(f.DataType),
		DueDate:        l.date(f.DueDate),
		RawLine:        string(l),
	}
}

// decodeExtension decodes the extended block following the basic prefix.
// Anything beyond the last known field is kept verbatim in Unparsed.
func decodeExtension(l recordLine) *models.Extension {
	c := &extensionCursor{line: l, offset: extensionStart}

	ext := &models.Extension{
		Message1:      c.text(messageWidth),
		Message2:      c.text(messageWidth),
		Message3:      c.text(messageWidth),
		Message4:      c.text(messageWidth),
		SenderMessage: c.text(senderMessageWidth),
	}
	ext.DebitedDate = c.date(debitedDateWidth)
	ext.ItemDescription = c.text(itemDescriptionWidth)
	ext.IdentificationReference = c.text(identificationReferenceWidth)
	ext.IsoAmount = c.amount(isoAmountWidth)
	ext.IsoCurrency = c.text(isoCurrencyWidth)
	ext.CounterAccountName = c.text(counterAccountNameWidth)
	ext.Unparsed = c.rest()

	return ext
}
