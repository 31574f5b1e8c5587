package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// Sheet names of the XLSX workbook.
const (
	SheetStatements   = "Statements"
	SheetTransactions = "Transactions"
	SheetRaw          = "Raw"
)

// XLSXWriter writes a workbook with one sheet per record kind.
type XLSXWriter struct{}

func (w *XLSXWriter) WriteToFile(path string, doc *models.ParsedDocument) error {
	return writeFile(path, doc, w)
}

func (w *XLSXWriter) Write(out io.Writer, doc *models.ParsedDocument) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetStatements); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetTransactions, SheetRaw} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	statements := [][]interface{}{{
		"Account", "Account Name", "Old Balance Date", "Old Balance", "New Balance",
		"Debit Turnover", "Credit Turnover", "Statement Number", "Accounting Date",
	}}
	for i := range doc.Statements {
		st := &doc.Statements[i]
		statements = append(statements, []interface{}{
			st.AccountNumber,
			st.AccountName,
			models.FormatDate(st.OldBalanceDate),
			st.SignedOldBalance(),
			st.SignedNewBalance(),
			st.SignedDebitTurnover(),
			st.SignedCreditTurnover(),
			st.StatementNumber,
			models.FormatDate(st.AccountingDate),
		})
	}

	transactions := [][]interface{}{append([]interface{}{"Format"}, stringsToCells(csvColumns)...)}
	for i := range doc.Transactions {
		txn := &doc.Transactions[i]
		transactions = append(transactions, []interface{}{
			string(txn.Format),
			txn.AccountNumber,
			txn.CounterAccount,
			txn.DocumentNumber,
			txn.Amount,
			txn.AccountingCode,
			txn.VariableSymbol,
			txn.ConstantSymbol,
			txn.SpecificSymbol,
			models.FormatDate(txn.ValuationDate),
			txn.AdditionalInfo,
			models.FormatDate(txn.DueDate),
			txn.CounterAccountName(),
			strings.Join(txn.Messages(), " "),
		})
	}

	raw := [][]interface{}{{"Line", "Type", "Content"}}
	for _, r := range doc.RawRecords {
		raw = append(raw, []interface{}{r.LineNumber, r.RecordType, r.Content})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetStatements:   statements,
		SheetTransactions: transactions,
		SheetRaw:          raw,
	} {
		if err := setRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
