package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// JSONWriter writes the whole document as JSON.
type JSONWriter struct {
	Indent string
}

func (w *JSONWriter) WriteToFile(path string, doc *models.ParsedDocument) error {
	return writeFile(path, doc, w)
}

func (w *JSONWriter) Write(out io.Writer, doc *models.ParsedDocument) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if w.Indent != "" {
		enc.SetIndent("", w.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
