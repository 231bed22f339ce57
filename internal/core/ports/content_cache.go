package ports

import (
	"context"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

// ContentCache caches parsed CSV payloads keyed by file id. A miss is
// reported as (nil, nil); cache errors are non-fatal to reads.
type ContentCache interface {
	Get(ctx context.Context, fileID string) (*domain.FileContent, error)
	Set(ctx context.Context, fileID string, content *domain.FileContent) error
	Delete(ctx context.Context, fileID string) error
}
