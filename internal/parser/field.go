package parser

import (
	"strconv"
	"strings"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// fieldCutset is what DecodeText trims from both ends of a field.
const fieldCutset = " \t\r\n"

// DecodeText trims ASCII whitespace and tabs from both ends of a field.
func DecodeText(raw string) string {
	return strings.Trim(raw, fieldCutset)
}

// DecodeDate parses a DDMMYY field. The year maps to 2000+YY. Day and month
// are range-checked only, so 31-02 is accepted. ok is false for anything
// that is not exactly six digits or is out of range.
func DecodeDate(raw string) (d models.Date, ok bool) {
	s := DecodeText(raw)
	if len(s) != 6 || !isDigits(s) {
		return models.Date{}, false
	}

	day, _ := strconv.Atoi(s[0:2])
	month, _ := strconv.Atoi(s[2:4])
	year, _ := strconv.Atoi(s[4:6])

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return models.Date{}, false
	}
	return models.Date{Year: 2000 + year, Month: month, Day: day}, true
}

// DecodeAmount parses an unsigned count of minor units and returns it
// divided by 100. Blank, non-numeric or overflowing input yields 0.
func DecodeAmount(raw string) float64 {
	s := strings.TrimLeft(DecodeText(raw), "0")
	if s == "" || !isDigits(s) {
		return 0
	}
	units, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return float64(units) / 100
}

// recordLine is a record split into characters. Offsets in the record
// layouts count characters, which equal bytes in the legacy single-byte
// source encoding but not in converted UTF-8 text.
type recordLine []rune

// span is a half-open character range within a record line.
type span struct {
	start, end int
}

// tagSpan is where every record keeps its type tag.
var tagSpan = span{0, 3}

// field returns the characters covered by s, clamped to the line length.
// A field that starts past the end of a truncated line is empty.
func (l recordLine) field(s span) string {
	if s.start >= len(l) {
		return ""
	}
	end := s.end
	if end > len(l) {
		end = len(l)
	}
	return string(l[s.start:end])
}

// covers reports whether the line is long enough to hold all of s.
func (l recordLine) covers(s span) bool {
	return len(l) >= s.end
}

func (l recordLine) text(s span) string {
	return DecodeText(l.field(s))
}

func (l recordLine) amount(s span) float64 {
	return DecodeAmount(l.field(s))
}

func (l recordLine) date(s span) *models.Date {
	d, ok := DecodeDate(l.field(s))
	if !ok {
		return nil
	}
	return &d
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
