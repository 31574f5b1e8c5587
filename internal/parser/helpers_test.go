package parser

import "strings"

// record builds a fixed-width test line: values are written at their
// offsets and the gaps are filled with spaces.
type record struct {
	buf []byte
}

func newRecord(tag string) *record {
	r := &record{}
	return r.at(0, tag)
}

func (r *record) at(offset int, value string) *record {
	if need := offset + len(value); need > len(r.buf) {
		r.buf = append(r.buf, []byte(strings.Repeat(" ", need-len(r.buf)))...)
	}
	copy(r.buf[offset:], value)
	return r
}

func (r *record) String() string {
	return string(r.buf)
}

// sampleStatement is a complete 074 line.
func sampleStatement() string {
	return newRecord("074").
		at(3, "0000001234567890").
		at(19, "SPOJE.NET S.R.O.").
		at(41, "010825").
		at(47, "00000001234500").
		at(61, "+").
		at(62, "00000001500000").
		at(76, "-").
		at(77, "00000000100000").
		at(91, "+").
		at(92, "00000000375500").
		at(106, "+").
		at(107, "003").
		at(110, "310825").
		String()
}

// sampleTransaction is a complete basic 075 line.
func sampleTransaction() string {
	return newRecord("075").
		at(3, "0000001234567890").
		at(19, "0000000987654321").
		at(35, "0000000000001").
		at(48, "000000150000").
		at(60, "2").
		at(61, "0000001234").
		at(71, "0000000308").
		at(81, "0000000000").
		at(91, "210825").
		at(97, "FAKTURA 2025001").
		at(117, "0").
		at(118, "1203").
		at(122, "220825").
		String()
}

// sampleExtendedTransaction is a basic 075 line followed by every known
// extension field and an opaque tail, long enough to be detected as
// extended.
func sampleExtendedTransaction() string {
	return newRecord("").
		at(0, sampleTransaction()).
		at(128, "ZPRAVA 1").
		at(163, "ZPRAVA 2").
		at(198, "ZPRAVA 3").
		at(233, "ZPRAVA 4").
		at(268, "ZPRAVA PRO ODESILATELE").
		at(303, "230825").
		at(309, "PLATBA KARTOU").
		at(334, "REF-0001").
		at(350, "000000000012345").
		at(365, "EUR").
		at(368, "JAN NOVAK").
		at(403, strings.Repeat("Z", 100)).
		String()
}
