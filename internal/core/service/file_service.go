package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nabin-web/startrace/internal/core/domain"
	"github.com/Nabin-web/startrace/internal/core/ports"
)

// FileService coordinates file metadata, blob storage, the parsed-content
// cache, and change notification. The notifier fires exactly once per
// successful mutation, strictly after the record is durably committed.
type FileService struct {
	repo     ports.FileRepository
	blobs    ports.BlobStore
	cache    ports.ContentCache
	notifier ports.ChangeNotifier
	logger   zerolog.Logger
}

func NewFileService(repo ports.FileRepository, blobs ports.BlobStore, cache ports.ContentCache, notifier ports.ChangeNotifier, logger zerolog.Logger) *FileService {
	return &FileService{repo: repo, blobs: blobs, cache: cache, notifier: notifier, logger: logger}
}

func (s *FileService) List(ctx context.Context) ([]*domain.FileRecord, error) {
	return s.repo.List(ctx)
}

// Get returns the record for download. A record whose blob has gone missing
// on disk is reported as not found rather than a broken stream later.
func (s *FileService) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.blobs.Exists(record.Path) {
		return nil, domain.ErrFileNotFound
	}
	return record, nil
}

// Content returns the parsed CSV payload, cache-aside: a cache hit skips the
// disk read, a miss parses and repopulates. Cache failures are logged and
// degrade to a plain parse.
func (s *FileService) Content(ctx context.Context, id string) (*domain.FileContent, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if cached, err := s.cache.Get(ctx, record.ID); err != nil {
		s.logger.Warn().Err(err).Str("file_id", record.ID).Msg("content cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	content, err := s.blobs.ParseCSV(record.Path)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record.ID, content); err != nil {
		s.logger.Warn().Err(err).Str("file_id", record.ID).Msg("content cache write failed")
	}
	return content, nil
}

// Upload stores the blob, creates the metadata record, and broadcasts the
// change. Only names ending in .csv are accepted.
func (s *FileService) Upload(ctx context.Context, uploader *domain.User, filename string, data io.Reader) (*domain.FileRecord, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, domain.ErrNotCSV
	}

	path, size, err := s.blobs.Save(filename, data)
	if err != nil {
		return nil, err
	}

	record := &domain.FileRecord{
		Name:             filename,
		Size:             size,
		CreatedAt:        time.Now().UTC(),
		UploaderID:       uploader.ID,
		UploaderUsername: uploader.Username,
		Path:             path,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		// The record never became visible; remove the orphaned blob.
		if delErr := s.blobs.Delete(path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", path).Msg("orphaned blob cleanup failed")
		}
		return nil, err
	}

	s.logger.Info().Str("file_id", created.ID).Str("name", created.Name).Int64("size", created.Size).Msg("file uploaded")
	s.notifier.FilesChanged()

	return created, nil
}

// Delete removes the blob, the record, and the cache entry, then broadcasts
// the change. A blob already gone from disk does not block the delete.
func (s *FileService) Delete(ctx context.Context, id string) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if s.blobs.Exists(record.Path) {
		if err := s.blobs.Delete(record.Path); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("file_id", id).Msg("content cache invalidation failed")
	}

	s.logger.Info().Str("file_id", id).Str("name", record.Name).Msg("file deleted")
	s.notifier.FilesChanged()

	return nil
}
