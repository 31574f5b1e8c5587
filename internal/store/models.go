package store

import "time"

// DocumentInfo describes one archived document without its records.
type DocumentInfo struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Format       string    `json:"format" yaml:"format"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	Statements   int       `json:"statements" yaml:"statements"`
	Transactions int       `json:"transactions" yaml:"transactions"`
	RawRecords   int       `json:"raw_records" yaml:"raw_records"`
}
