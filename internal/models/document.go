package models

// Format identifies which 075 record layout a document uses.
type Format string

const (
	FormatBasic    Format = "basic"
	FormatExtended Format = "extended"
)

// Record type tags.
const (
	TagStatement   = "074"
	TagTransaction = "075"
)

// Record is implemented by every structured record a document line can decode to.
type Record interface {
	Tag() string
}

// RawRecord captures one non-empty input line, whether or not its tag is recognized.
type RawRecord struct {
	LineNumber int    `json:"line_number" yaml:"line_number"`
	RecordType string `json:"record_type" yaml:"record_type"`
	Content    string `json:"content" yaml:"content"`
}

// ParsedDocument is the result of decoding one ABO document.
type ParsedDocument struct {
	Format       Format        `json:"format" yaml:"format"`
	Statements   []Statement   `json:"statements" yaml:"statements"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	RawRecords   []RawRecord   `json:"raw_records" yaml:"raw_records"`
}

// NewParsedDocument returns an empty document with non-nil slices so that
// it serializes to empty arrays rather than null.
func NewParsedDocument(format Format) *ParsedDocument {
	return &ParsedDocument{
		Format:       format,
		Statements:   []Statement{},
		Transactions: []Transaction{},
		RawRecords:   []RawRecord{},
	}
}

// Add appends a decoded record to the matching slice.
func (d *ParsedDocument) Add(r Record) {
	switch rec := r.(type) {
	case *Statement:
		d.Statements = append(d.Statements, *rec)
	case *Transaction:
		d.Transactions = append(d.Transactions, *rec)
	}
}
