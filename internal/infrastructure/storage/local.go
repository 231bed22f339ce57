package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

// LocalStore keeps uploaded blobs in a flat directory on the local
// filesystem. Blob names are flattened to their base name so a crafted
// filename cannot escape the upload directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// EnsureDir creates the upload directory when absent.
func (s *LocalStore) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Save writes data under name inside the upload directory and returns the
// final path and byte count. An existing blob with the same name is
// overwritten, mirroring a re-upload of the same file.
func (s *LocalStore) Save(name string, data io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, filepath.Base(name))

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create blob: %w", err)
	}

	size, err := io.Copy(dst, data)
	if err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("close blob: %w", err)
	}

	return path, size, nil
}

func (s *LocalStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *LocalStore) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// ParseCSV reads the blob at path as a CSV document: the first record is the
// header row, every following record becomes a map keyed by header. An empty
// file yields empty headers and no rows.
func (s *LocalStore) ParseCSV(path string) (*domain.FileContent, error) {
	f, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Display tolerates short rows; missing cells render empty.
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return &domain.FileContent{Headers: []string{}, Rows: []map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	rows := make([]map[string]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv row: %w", err)
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &domain.FileContent{Headers: headers, Rows: rows}, nil
}
