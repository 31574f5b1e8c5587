package store

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNestedTx         = errors.New("store is already in a transaction")
)
