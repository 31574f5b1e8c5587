package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		date     Date
		expected string
	}{
		{Date{Year: 2025, Month: 8, Day: 21}, `"2025-08-21"`},
		{Date{Year: 2024, Month: 2, Day: 31}, `"2024-02-31"`},
		{Date{Year: 2000, Month: 1, Day: 1}, `"2000-01-01"`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			data, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.expected {
				t.Errorf("got %s, want %s", data, tt.expected)
			}

			var back Date
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if back != tt.date {
				t.Errorf("round trip: got %+v, want %+v", back, tt.date)
			}
		})
	}
}

func TestDate_NilFields(t *testing.T) {
	st := Statement{RecordType: TagStatement}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if v, ok := out["old_balance_date"]; !ok || v != nil {
		t.Errorf("old_balance_date: got %v (present=%v), want null", v, ok)
	}
	if FormatDate(nil) != "" {
		t.Error("FormatDate(nil) must be empty")
	}
}

func TestDate_YAML(t *testing.T) {
	data, err := yaml.Marshal(map[string]Date{"d": {Year: 2025, Month: 8, Day: 1}})
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["d"] != "2025-08-01" {
		t.Errorf("got %q", out["d"])
	}
}

func TestParseISODate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-08", "2025-aa-01", "20250801"} {
		if _, err := ParseISODate(s); err == nil {
			t.Errorf("ParseISODate(%q): expected error", s)
		}
	}
}

func TestParsedDocument_Add(t *testing.T) {
	doc := NewParsedDocument(FormatBasic)
	doc.Add(&Statement{AccountNumber: "1"})
	doc.Add(&Transaction{AccountNumber: "2"})
	doc.Add(&Transaction{AccountNumber: "3"})

	if len(doc.Statements) != 1 || len(doc.Transactions) != 2 {
		t.Errorf("got %d statements, %d transactions", len(doc.Statements), len(doc.Transactions))
	}
	if doc.Transactions[1].AccountNumber != "3" {
		t.Error("records must keep input order")
	}
}

func TestTransaction_Classification(t *testing.T) {
	tests := []struct {
		code     string
		credit   bool
		reversal bool
	}{
		{AccountingDebit, false, false},
		{AccountingCredit, true, false},
		{AccountingDebitReversal, false, true},
		{AccountingCreditReversal, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tx := Transaction{AccountingCode: tt.code}
			if tx.IsCredit() != tt.credit {
				t.Errorf("IsCredit: got %v, want %v", tx.IsCredit(), tt.credit)
			}
			if tx.IsReversal() != tt.reversal {
				t.Errorf("IsReversal: got %v, want %v", tx.IsReversal(), tt.reversal)
			}
		})
	}
}
