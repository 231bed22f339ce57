package ports

import (
	"context"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

// FileRepository defines the interface for file record persistence.
type FileRepository interface {
	List(ctx context.Context) ([]*domain.FileRecord, error)
	FindByID(ctx context.Context, id string) (*domain.FileRecord, error)
	Create(ctx context.Context, record *domain.FileRecord) (*domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
