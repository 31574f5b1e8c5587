package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the legacy code page Czech banks export ABO files in.
const DefaultEncoding = "windows-1250"

// ErrUnknownEncoding is returned for an encoding name that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Code pages the WHATWG index does not know about, plus the short aliases
// banks tend to print in their export settings.
var legacyEncodings = map[string]encoding.Encoding{
	"cp852":  charmap.CodePage852,
	"ibm852": charmap.CodePage852,
	"852":    charmap.CodePage852,
	"cp1250": charmap.Windows1250,
	"1250":   charmap.Windows1250,
	"latin2": charmap.ISO8859_2,
}

// LookupEncoding resolves an encoding name such as "windows-1250",
// "iso-8859-2" or "cp852".
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := legacyEncodings[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Normalize turns raw file content into canonical UTF-8 text. A leading
// UTF-8 byte-order mark is always removed. When convert is set the content
// is decoded from the named encoding, even if it happens to be valid UTF-8;
// pass "utf-8" or disable conversion for input that already is. Bytes the
// code page leaves unassigned are dropped.
func Normalize(data []byte, encodingName string, convert bool) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !convert {
		return string(data), nil
	}

	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}

	dropInvalid := runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError }))
	out, _, err := transform.Bytes(transform.Chain(enc.NewDecoder(), dropInvalid), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encodingName, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}
