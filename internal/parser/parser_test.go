package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

func TestParseString_BasicDocument(t *testing.T) {
	text := strings.Join([]string{
		sampleStatement(),
		sampleTransaction(),
		"",
		sampleTransaction() + "\r",
		"076 SOME BANK EXTENSION",
		"   ",
	}, "\n")

	doc := Decode(text)

	if doc.Format != models.FormatBasic {
		t.Errorf("Format: got %q, want %q", doc.Format, models.FormatBasic)
	}
	if len(doc.Statements) != 1 {
		t.Errorf("statements: got %d, want 1", len(doc.Statements))
	}
	if len(doc.Transactions) != 2 {
		t.Errorf("transactions: got %d, want 2", len(doc.Transactions))
	}
	if len(doc.RawRecords) != 4 {
		t.Fatalf("raw records: got %d, want 4", len(doc.RawRecords))
	}

	wantLines := []int{1, 2, 4, 5}
	wantTags := []string{"074", "075", "075", "076"}
	for i, rec := range doc.RawRecords {
		if rec.LineNumber != wantLines[i] {
			t.Errorf("raw[%d].LineNumber: got %d, want %d", i, rec.LineNumber, wantLines[i])
		}
		if rec.RecordType != wantTags[i] {
			t.Errorf("raw[%d].RecordType: got %q, want %q", i, rec.RecordType, wantTags[i])
		}
	}

	if doc.RawRecords[2].Content != strings.TrimRight(sampleTransaction(), " ") {
		t.Error("raw content must be the trimmed line")
	}
	if doc.RawRecords[3].Content != "076 SOME BANK EXTENSION" {
		t.Errorf("raw[3].Content: got %q", doc.RawRecords[3].Content)
	}
}

func TestParseString_ExtendedDocument(t *testing.T) {
	text := sampleStatement() + "\n" + sampleExtendedTransaction() + "\n" + sampleTransaction() + "\n"

	doc := Decode(text)
	if doc.Format != models.FormatExtended {
		t.Fatalf("Format: got %q, want %q", doc.Format, models.FormatExtended)
	}
	if len(doc.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(doc.Transactions))
	}
	for i, tx := range doc.Transactions {
		if tx.Format != doc.Format {
			t.Errorf("transaction[%d].Format: got %q, want %q", i, tx.Format, doc.Format)
		}
		if tx.Extension == nil {
			t.Errorf("transaction[%d] has no extension block", i)
		}
	}
	// The second, short line simply has no extension fields.
	if doc.Transactions[1].Extension.Message1 != nil {
		t.Error("short transaction in an extended document must have no messages")
	}
}

func TestParseString_BlankDocument(t *testing.T) {
	for _, text := range []string{"", "\n\n", "   \n\t\n \r\n"} {
		doc := Decode(text)
		if len(doc.Statements) != 0 || len(doc.Transactions) != 0 || len(doc.RawRecords) != 0 {
			t.Errorf("Decode(%q): expected an empty document, got %+v", text, doc)
		}
		if doc.Statements == nil || doc.Transactions == nil || doc.RawRecords == nil {
			t.Errorf("Decode(%q): slices must be non-nil", text)
		}
	}
}

func TestParseString_ShortStatementLine(t *testing.T) {
	doc := Decode("074short")

	if len(doc.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(doc.Statements))
	}
	s := doc.Statements[0]
	if s.RecordType != "074" {
		t.Errorf("RecordType: got %q", s.RecordType)
	}
	if s.AccountNumber != "short" {
		t.Errorf("AccountNumber: got %q, want %q", s.AccountNumber, "short")
	}
}

func TestParseString_ShortTags(t *testing.T) {
	doc := Decode("07\n7\n074")

	tags := []string{}
	for _, r := range doc.RawRecords {
		tags = append(tags, r.RecordType)
	}
	if strings.Join(tags, ",") != "07,7,074" {
		t.Errorf("tags: got %v", tags)
	}
	if len(doc.Statements) != 1 {
		t.Errorf("statements: got %d, want 1", len(doc.Statements))
	}
}

func TestParseString_CarriageReturnDoesNotSplit(t *testing.T) {
	doc := Decode(sampleStatement() + "\r" + "075XYZ")

	if len(doc.RawRecords) != 1 {
		t.Fatalf("raw records: got %d, want 1", len(doc.RawRecords))
	}
	if doc.RawRecords[0].RecordType != "074" {
		t.Errorf("tag: got %q", doc.RawRecords[0].RecordType)
	}
}

func TestParseString_CountInvariant(t *testing.T) {
	docs := []string{
		sampleStatement(),
		sampleStatement() + "\n" + sampleTransaction(),
		"999\n074\n075\nabc\n\n075",
		"garbage line\n\x00\x01\x02\n" + sampleExtendedTransaction(),
		strings.Repeat("075 short\n", 20),
	}

	for _, text := range docs {
		doc := Decode(text)
		structured := len(doc.Statements) + len(doc.Transactions)
		if structured > len(doc.RawRecords) {
			t.Errorf("structured %d > raw %d", structured, len(doc.RawRecords))
		}

		allKnown := true
		for _, r := range doc.RawRecords {
			if r.RecordType != models.TagStatement && r.RecordType != models.TagTransaction {
				allKnown = false
			}
		}
		if allKnown != (structured == len(doc.RawRecords)) {
			t.Errorf("equality must hold iff every tag is 074/075 (allKnown=%v structured=%d raw=%d)",
				allKnown, structured, len(doc.RawRecords))
		}

		for _, tx := range doc.Transactions {
			if tx.Format != doc.Format {
				t.Errorf("transaction format %q differs from document format %q", tx.Format, doc.Format)
			}
		}
	}
}

func TestParseString_RoundTrip(t *testing.T) {
	text := strings.Join([]string{
		sampleStatement(),
		sampleExtendedTransaction(),
		sampleTransaction(),
		"076 other",
		"074short",
	}, "\n")

	first := Decode(text)

	contents := make([]string, 0, len(first.RawRecords))
	for _, r := range first.RawRecords {
		contents = append(contents, r.Content)
	}
	second := Decode(strings.Join(contents, "\n"))

	if second.Format != first.Format {
		t.Errorf("Format: got %q, want %q", second.Format, first.Format)
	}
	if len(second.Statements) != len(first.Statements) || len(second.Transactions) != len(first.Transactions) {
		t.Errorf("counts differ: %d/%d vs %d/%d",
			len(second.Statements), len(second.Transactions), len(first.Statements), len(first.Transactions))
	}
	if len(second.RawRecords) != len(first.RawRecords) {
		t.Fatalf("raw records: got %d, want %d", len(second.RawRecords), len(first.RawRecords))
	}
	for i := range first.RawRecords {
		if second.RawRecords[i].RecordType != first.RawRecords[i].RecordType {
			t.Errorf("raw[%d] tag: got %q, want %q", i, second.RawRecords[i].RecordType, first.RawRecords[i].RecordType)
		}
	}
}

func TestParser_Parse(t *testing.T) {
	// A windows-1250 file with a BOM-free legacy account name.
	line := []byte(sampleStatement())
	copy(line[19:], []byte{'P', 0xD8, 0xCD, 'K', 'L', 'A', 'D'}) // "PŘÍKLAD"

	p := New(DefaultConfig())
	doc, err := p.Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Statements) != 1 {
		t.Fatalf("statements: got %d, want 1", len(doc.Statements))
	}
	s := doc.Statements[0]
	if !strings.HasPrefix(s.AccountName, "PŘÍKLAD") {
		t.Errorf("AccountName: got %q", s.AccountName)
	}
	if s.StatementNumber != "003" {
		t.Errorf("offsets shifted after conversion: StatementNumber=%q", s.StatementNumber)
	}
}

func TestParser_ParseLegacyBytesValidAsUTF8(t *testing.T) {
	// D8 8A is "ŘŠ" in windows-1250 and also a single valid UTF-8 rune.
	line := []byte(sampleStatement())
	copy(line[19:], []byte{0xD8, 0x8A, 'K', 'A'})

	doc, err := New(DefaultConfig()).Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := doc.Statements[0]
	if !strings.HasPrefix(s.AccountName, "ŘŠKA") {
		t.Errorf("AccountName: got %q", s.AccountName)
	}
	if s.StatementNumber != "003" {
		t.Errorf("StatementNumber: got %q, want %q", s.StatementNumber, "003")
	}
	if s.NewBalanceSign != "-" {
		t.Errorf("NewBalanceSign: got %q, want %q", s.NewBalanceSign, "-")
	}
}

func TestParser_ParseUnknownEncoding(t *testing.T) {
	p := New(Config{Encoding: "nope", ConvertEncoding: true})
	if _, err := p.Parse([]byte{0xFF}); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.gpc")
	if err := os.WriteFile(path, []byte(sampleStatement()+"\n"+sampleTransaction()+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := New(DefaultConfig()).ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.RawRecords) != 2 {
		t.Errorf("raw records: got %d, want 2", len(doc.RawRecords))
	}

	if _, err := New(DefaultConfig()).ParseFile(filepath.Join(dir, "missing.gpc")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParser_LogsUnknownRecords(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	New(DefaultConfig(), WithLogger(log)).ParseString("999 unknown\n074short")

	out := buf.String()
	if !strings.Contains(out, "unrecognized record type") {
		t.Errorf("expected unrecognized record log, got %q", out)
	}
	if !strings.Contains(out, "truncated record") {
		t.Errorf("expected truncated record log, got %q", out)
	}
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := New(DefaultConfig())
	basic := sampleStatement() + "\n" + sampleTransaction()
	extended := sampleStatement() + "\n" + sampleExtendedTransaction()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, want := basic, models.FormatBasic
			if i%2 == 1 {
				text, want = extended, models.FormatExtended
			}
			doc := p.ParseString(text)
			if doc.Format != want || doc.Transactions[0].Format != want {
				t.Errorf("goroutine %d: got %q/%q, want %q", i, doc.Format, doc.Transactions[0].Format, want)
			}
		}(i)
	}
	wg.Wait()
}
