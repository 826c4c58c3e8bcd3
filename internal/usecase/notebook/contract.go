package notebook

import (
	"context"

	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// Repository defines the storage contract for notebooks.
type Repository interface {
	Save(ctx context.Context, nb *domnb.Notebook) error
	Get(ctx context.Context, owner, id string) (domnb.Notebook, error)
	List(ctx context.Context, owner string) ([]domnb.Notebook, error)
	Delete(ctx context.Context, owner, id string) error
}

// SnapshotRemover drops the stored analysis of a deleted notebook.
type SnapshotRemover interface {
	Delete(ctx context.Context, notebookID string) error
}
