package parser

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		encoding string
		convert  bool
		expected string
	}{
		{
			name:     "utf-8 declared",
			input:    []byte("074Účet"),
			encoding: "utf-8",
			convert:  true,
			expected: "074Účet",
		},
		{
			name:     "utf-8 left alone without conversion",
			input:    []byte("074Účet"),
			encoding: "windows-1250",
			convert:  false,
			expected: "074Účet",
		},
		{
			name:     "windows-1250 that is also valid utf-8",
			input:    []byte{'0', '7', '4', 0xD8, 0x8A}, // "ŘŠ"
			encoding: "windows-1250",
			convert:  true,
			expected: "074ŘŠ",
		},
		{
			name:     "bom stripped",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("074abc")...),
			encoding: "windows-1250",
			convert:  true,
			expected: "074abc",
		},
		{
			name:     "bom stripped without conversion",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("075")...),
			convert:  false,
			expected: "075",
		},
		{
			name:     "windows-1250",
			input:    []byte{'0', '7', '4', 0xDA, 0xE8, 'e', 't'}, // "Účet"
			encoding: "windows-1250",
			convert:  true,
			expected: "074Účet",
		},
		{
			name:     "cp1250 alias",
			input:    []byte{0x8A, 0x9E}, // "Šž"
			encoding: "CP1250",
			convert:  true,
			expected: "Šž",
		},
		{
			name:     "iso-8859-2",
			input:    []byte{0xA9, 0xBE}, // "Šž"
			encoding: "iso-8859-2",
			convert:  true,
			expected: "Šž",
		},
		{
			name:     "cp852",
			input:    []byte{0xE6, 0xA7}, // "Šž"
			encoding: "cp852",
			convert:  true,
			expected: "Šž",
		},
		{
			name:     "unassigned bytes dropped",
			input:    []byte{'a', 0x81, 'b', 0x98, 'c'},
			encoding: "windows-1250",
			convert:  true,
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.encoding, tt.convert)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalize_UnknownEncoding(t *testing.T) {
	_, err := Normalize([]byte{0xDA}, "klingon-8", true)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}

	// Conversion disabled: the name is never looked at.
	if _, err := Normalize([]byte("075"), "klingon-8", false); err != nil {
		t.Errorf("unexpected error with conversion disabled: %v", err)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"windows-1250", "Windows-1250", "cp1250", "iso-8859-2", "latin2", "ibm852", "utf-8"} {
		t.Run(name, func(t *testing.T) {
			if _, err := LookupEncoding(name); err != nil {
				t.Errorf("LookupEncoding(%q): %v", name, err)
			}
		})
	}
}
