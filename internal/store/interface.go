package store

import "github.com/Spoje-NET/abo-parser/internal/models"

type Repository interface {
	SaveDocument(name string, doc *models.ParsedDocument) (string, error)
	ListDocuments() ([]*DocumentInfo, error)
	GetDocumentInfo(id string) (*DocumentInfo, error)
	GetDocument(id string) (*models.ParsedDocument, error)
	DeleteDocument(id string) error

	Close() error
}
