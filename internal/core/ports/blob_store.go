package ports

import (
	"io"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

// BlobStore is the filesystem collaborator: it owns the bytes of uploaded
// files while the repositories own the metadata.
type BlobStore interface {
	// Save writes data under name and returns the final path and byte count.
	Save(name string, data io.Reader) (path string, size int64, err error)
	Exists(path string) bool
	Delete(path string) error
	Open(path string) (io.ReadCloser, error)
	// ParseCSV reads the blob at path as a CSV document.
	ParseCSV(path string) (*domain.FileContent, error)
}
