package state

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrCorruptDocument  = errors.New("stored document could not be decoded")
	ErrNoSession        = errors.New("no active session")
)
