package domain

import (
	"errors"
	"time"
)

var ErrFileNotFound = errors.New("file not found")
var ErrNotCSV = errors.New("only CSV files are allowed")

// FileRecord is the database-side view of an uploaded CSV file. Path points
// at the blob inside the upload directory and is never exposed to clients.
type FileRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
	UploaderID       string    `json:"uploader_id"`
	UploaderUsername string    `json:"uploader_username"`
	Path             string    `json:"-"`
}

// FileContent is a parsed CSV payload ready for display: the header row plus
// every data row keyed by header name.
type FileContent struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}
