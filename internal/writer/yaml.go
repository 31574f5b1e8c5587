package writer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// YAMLWriter writes the whole document as YAML.
type YAMLWriter struct{}

func (w *YAMLWriter) WriteToFile(path string, doc *models.ParsedDocument) error {
	return writeFile(path, doc, w)
}

func (w *YAMLWriter) Write(out io.Writer, doc *models.ParsedDocument) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
