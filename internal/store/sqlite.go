package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Spoje-NET/abo-parser/internal/models"
	"github.com/Spoje-NET/abo-parser/internal/parser"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store archives parsed documents in sqlite. Only the raw records are
// kept; structured records are decoded again on read.
type Store struct {
	db  DBTX
	now func() time.Time
}

var _ Repository = (*Store)(nil)

func NewStore(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("can not open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("can not connect with database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) ExecTx(fn func(*Store) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return ErrNestedTx
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	txStore := &Store{db: tx, now: s.now}

	err = fn(txStore)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up): %w", err)
	}
	return nil
}

// SaveDocument archives doc under name and returns its new id.
func (s *Store) SaveDocument(name string, doc *models.ParsedDocument) (string, error) {
	id := uuid.NewString()

	err := s.ExecTx(func(tx *Store) error {
		_, err := tx.db.Exec(`
			INSERT INTO documents (id, name, format, created_at, statements, transactions, raw_records)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, name, string(doc.Format), tx.now().Unix(),
			len(doc.Statements), len(doc.Transactions), len(doc.RawRecords))
		if err != nil {
			return fmt.Errorf("failed to insert document: %w", err)
		}

		stmt, err := tx.db.Prepare(`
			INSERT INTO raw_records (document_id, position, line_number, record_type, content)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare raw record SQL: %w", err)
		}
		defer stmt.Close()

		for i, rec := range doc.RawRecords {
			if _, err := stmt.Exec(id, i, rec.LineNumber, rec.RecordType, rec.Content); err != nil {
				return fmt.Errorf("failed to insert raw record %d: %w", rec.LineNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListDocuments returns archived documents, newest first.
func (s *Store) ListDocuments() ([]*DocumentInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, name, format, created_at, statements, transactions, raw_records
		FROM documents
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []*DocumentInfo{}
	for rows.Next() {
		info, err := scanDocumentInfo(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, info)
	}
	return docs, rows.Err()
}

func (s *Store) GetDocumentInfo(id string) (*DocumentInfo, error) {
	row := s.db.QueryRow(`
		SELECT id, name, format, created_at, statements, transactions, raw_records
		FROM documents
		WHERE id = ?
	`, id)

	info, err := scanDocumentInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
		}
		return nil, err
	}
	return info, nil
}

// GetDocument loads an archived document by decoding its raw records again.
// Line numbers are those of the original input.
func (s *Store) GetDocument(id string) (*models.ParsedDocument, error) {
	info, err := s.GetDocumentInfo(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT line_number, content
		FROM raw_records
		WHERE document_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw records: %w", err)
	}
	defer rows.Close()

	var lineNumbers []int
	var contents []string
	for rows.Next() {
		var lineNumber int
		var content string
		if err := rows.Scan(&lineNumber, &content); err != nil {
			return nil, fmt.Errorf("failed to scan raw record: %w", err)
		}
		lineNumbers = append(lineNumbers, lineNumber)
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw records: %w", err)
	}

	doc := parser.New(parser.Config{}).ParseString(strings.Join(contents, "\n"))
	if len(doc.RawRecords) != len(lineNumbers) {
		return nil, fmt.Errorf("document %s: archived %d raw records, decoded %d", id, len(lineNumbers), len(doc.RawRecords))
	}
	for i := range doc.RawRecords {
		doc.RawRecords[i].LineNumber = lineNumbers[i]
	}
	if string(doc.Format) != info.Format {
		return nil, fmt.Errorf("document %s: archived as %s, decoded as %s", id, info.Format, doc.Format)
	}

	return doc, nil
}

func (s *Store) DeleteDocument(id string) error {
	result, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocumentInfo(row rowScanner) (*DocumentInfo, error) {
	info := &DocumentInfo{}
	var createdAt int64
	err := row.Scan(&info.ID, &info.Name, &info.Format, &createdAt,
		&info.Statements, &info.Transactions, &info.RawRecords)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	info.CreatedAt = time.Unix(createdAt, 0)
	return info, nil
}
