package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

var csvColumns = []string{
	"Account", "Counter Account", "Document", "Amount", "Accounting Code",
	"Variable Symbol", "Constant Symbol", "Specific Symbol", "Valuation Date",
	"Additional Info", "Due Date", "Counter Account Name", "Message",
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, doc *models.ParsedDocument) error {
	return writeFile(path, doc, w)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, doc *models.ParsedDocument) error {
	writer := csv.NewWriter(out)

	// Metadata as comment-like rows ahead of the table
	if w.IncludeHeader {
		writer.Write([]string{"# Format", string(doc.Format)})
		for _, st := range doc.Statements {
			if st.AccountNumber != "" {
				writer.Write([]string{"# Account", st.AccountNumber})
			}
			if st.AccountName != "" {
				writer.Write([]string{"# Account Name", st.AccountName})
			}
			if st.StatementNumber != "" {
				writer.Write([]string{"# Statement Number", st.StatementNumber})
			}
			writer.Write([]string{"# Old Balance", formatAmount(st.SignedOldBalance())})
			writer.Write([]string{"# New Balance", formatAmount(st.SignedNewBalance())})
		}
	}

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range doc.Transactions {
		txn := &doc.Transactions[i]
		row := []string{
			txn.AccountNumber,
			txn.CounterAccount,
			txn.DocumentNumber,
			formatAmount(txn.Amount),
			txn.AccountingCode,
			txn.VariableSymbol,
			txn.ConstantSymbol,
			txn.SpecificSymbol,
			models.FormatDate(txn.ValuationDate),
			txn.AdditionalInfo,
			models.FormatDate(txn.DueDate),
			txn.CounterAccountName(),
			strings.Join(txn.Messages(), " "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
