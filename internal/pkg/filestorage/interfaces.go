package filestorage

import (
	"io"
	"time"
)

// StorageObject describes one committed object in the storage namespace.
type StorageObject struct {
	Key     string
	ModTime time.Time
}

// FileStorage defines the interface for the attachment storage backend.
// Keys are append-only by convention: a key is written once and never
// overwritten in place.
type FileStorage interface {
	// Save durably stores the content under key and returns the URL
	// clients use to reach it. Nothing is visible under key until the
	// write has fully completed.
	Save(key string, content io.Reader) (string, error)

	// Delete removes the stored bytes for key. Deleting a missing key is
	// not an error.
	Delete(key string) error

	// ListKeys returns every committed object in the storage namespace,
	// with the time its bytes were committed.
	ListKeys() ([]StorageObject, error)

	// URLFor returns the URL for an already-stored key.
	URLFor(key string) string
}
