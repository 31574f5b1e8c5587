package parser

import (
	"unicode/utf8"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// ExtendedLineThreshold is the trimmed 075 line length above which a
// document is treated as using the extended layout.
const ExtendedLineThreshold = 500

// DetectFormat classifies a document by its first transaction line only.
// Documents without any 075 line are basic.
func DetectFormat(lines []string) models.Format {
	for _, line := range lines {
		content := DecodeText(line)
		if content == "" || recordTag(content) != models.TagTransaction {
			continue
		}
		if utf8.RuneCountInString(content) > ExtendedLineThreshold {
			return models.FormatExtended
		}
		return models.FormatBasic
	}
	return models.FormatBasic
}

// recordTag returns the leading tag of a trimmed line, shorter than three
// characters when the line is.
func recordTag(content string) string {
	return recordLine(content).field(tagSpan)
}
