package parser

import (
	"strings"
	"testing"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

func TestDetectFormat(t *testing.T) {
	basic := sampleTransaction()
	extended := sampleExtendedTransaction()

	tests := []struct {
		name     string
		lines    []string
		expected models.Format
	}{
		{
			name:     "no transactions defaults to basic",
			lines:    []string{sampleStatement(), "076 something else"},
			expected: models.FormatBasic,
		},
		{
			name:     "empty document",
			lines:    nil,
			expected: models.FormatBasic,
		},
		{
			name:     "basic transaction",
			lines:    []string{sampleStatement(), basic},
			expected: models.FormatBasic,
		},
		{
			name:     "extended transaction",
			lines:    []string{"", sampleStatement(), extended},
			expected: models.FormatExtended,
		},
		{
			name:     "first transaction decides",
			lines:    []string{basic, extended, extended},
			expected: models.FormatBasic,
		},
		{
			name:     "first transaction decides extended",
			lines:    []string{extended, basic},
			expected: models.FormatExtended,
		},
		{
			name:     "exactly 500 characters is basic",
			lines:    []string{"075" + strings.Repeat("1", 497)},
			expected: models.FormatBasic,
		},
		{
			name:     "501 characters is extended",
			lines:    []string{"075" + strings.Repeat("1", 498)},
			expected: models.FormatExtended,
		},
		{
			name:     "trailing blanks do not count",
			lines:    []string{"075" + strings.Repeat("1", 497) + strings.Repeat(" ", 20) + "\r"},
			expected: models.FormatBasic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFormat(tt.lines)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRecordTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"074short", "074"},
		{"07", "07"},
		{"9", "9"},
		{"075", "075"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := recordTag(tt.input); got != tt.expected {
				t.Errorf("recordTag(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
