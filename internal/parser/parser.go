package parser

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// Config controls input normalization.
type Config struct {
	// Encoding is the legacy code page the input is decoded from.
	Encoding string
	// ConvertEncoding enables decoding from Encoding. When false the input
	// is used as-is, apart from BOM removal.
	ConvertEncoding bool
}

// DefaultConfig returns windows-1250 input with conversion enabled.
func DefaultConfig() Config {
	return Config{
		Encoding:        DefaultEncoding,
		ConvertEncoding: true,
	}
}

// recordDecoder turns one trimmed line into a structured record.
type recordDecoder func(content string, format models.Format) models.Record

var decoders = map[string]recordDecoder{
	models.TagStatement: func(content string, _ models.Format) models.Record {
		return decodeStatement(content)
	},
	models.TagTransaction: func(content string, format models.Format) models.Record {
		return decodeTransaction(content, format)
	},
}

// recordWidths is the length a line needs for every fixed field of its
// record type to be present.
var recordWidths = map[string]int{
	models.TagStatement:   statementLayout.AccountingDate.end,
	models.TagTransaction: transactionLayout.DueDate.end,
}

// Parser decodes ABO documents. It holds no per-document state, so one
// Parser may be shared between goroutines.
type Parser struct {
	cfg Config
	log logrus.FieldLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns a Parser for the given configuration.
func New(cfg Config, opts ...Option) *Parser {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Parser{cfg: cfg, log: discard}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the parser configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse normalizes raw file content and decodes it. The only possible
// error is an input normalization failure; decoding itself never fails.
func (p *Parser) Parse(data []byte) (*models.ParsedDocument, error) {
	text, err := Normalize(data, p.cfg.Encoding, p.cfg.ConvertEncoding)
	if err != nil {
		return nil, err
	}
	return p.ParseString(text), nil
}

// ParseString decodes already normalized text.
func (p *Parser) ParseString(text string) *models.ParsedDocument {
	// Only \n separates records; a trailing \r is trimmed with the line.
	lines := strings.Split(text, "\n")

	format := DetectFormat(lines)
	doc := models.NewParsedDocument(format)

	for i, line := range lines {
		content := DecodeText(line)
		if content == "" {
			continue
		}

		tag := recordTag(content)
		doc.RawRecords = append(doc.RawRecords, models.RawRecord{
			LineNumber: i + 1,
			RecordType: tag,
			Content:    content,
		})

		decode, ok := decoders[tag]
		if !ok {
			p.log.WithFields(logrus.Fields{"line": i + 1, "tag": tag}).Debug("unrecognized record type, keeping raw record only")
			continue
		}
		if n := utf8.RuneCountInString(content); n < recordWidths[tag] {
			p.log.WithFields(logrus.Fields{"line": i + 1, "tag": tag, "length": n}).Debug("truncated record, trailing fields left empty")
		}
		doc.Add(decode(content, format))
	}

	p.log.WithFields(logrus.Fields{
		"format":       format,
		"statements":   len(doc.Statements),
		"transactions": len(doc.Transactions),
		"raw_records":  len(doc.RawRecords),
	}).Debug("document decoded")

	return doc
}

// Decode parses normalized text with the default configuration.
func Decode(text string) *models.ParsedDocument {
	return New(DefaultConfig()).ParseString(text)
}
