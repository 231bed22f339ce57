package ports

import (
	"context"
	"io"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

type FileService interface {
	List(ctx context.Context) ([]*domain.FileRecord, error)
	// Get returns the record only when its blob still exists on disk.
	Get(ctx context.Context, id string) (*domain.FileRecord, error)
	Content(ctx context.Context, id string) (*domain.FileContent, error)
	Upload(ctx context.Context, uploader *domain.User, filename string, data io.Reader) (*domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
