package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer renders a parsed document.
type Writer interface {
	Write(out io.Writer, doc *models.ParsedDocument) error
	WriteToFile(path string, doc *models.ParsedDocument) error
}

// Options are shared by all writers; each uses what applies to it.
type Options struct {
	// IncludeHeader adds metadata rows to CSV output.
	IncludeHeader bool
}

// New returns the writer for format.
func New(format string, opts Options) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		return &JSONWriter{Indent: "  "}, nil
	case FormatYAML, "yml":
		return &YAMLWriter{}, nil
	case FormatCSV:
		return &CSVWriter{IncludeHeader: opts.IncludeHeader}, nil
	case FormatXLSX, "excel":
		return &XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: json, yaml, csv, xlsx)", ErrUnknownFormat, format)
	}
}

// Extension returns the file extension conventionally used for format.
func Extension(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatYAML, "yml":
		return ".yaml"
	case FormatCSV:
		return ".csv"
	case FormatXLSX, "excel":
		return ".xlsx"
	default:
		return ".json"
	}
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatYAML, "yml":
		return "application/yaml"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX, "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

func writeFile(path string, doc *models.ParsedDocument, w Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
