package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/Spoje-NET/abo-parser/internal/models"
)

// ReadFile loads an ABO file from disk.
func ReadFile(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ReadAll loads an ABO document from a stream such as stdin.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// ParseFile reads and decodes the file at path.
func (p *Parser) ParseFile(path string) (*models.ParsedDocument, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
