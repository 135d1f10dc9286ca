package repositories

import (
	"context"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

// RegistryRepository is the durable per-filename processing state store.
// Upsert merges a patch into the existing record, creating it when absent;
// implementations serialize concurrent upserts so no update is lost.
type RegistryRepository interface {
	// Get returns nil, nil when no record exists for filename
	Get(ctx context.Context, filename string) (*entities.ProcessingRecord, error)
	Upsert(ctx context.Context, filename string, patch entities.RecordPatch) (*entities.ProcessingRecord, error)
	// List returns records in insertion order
	List(ctx context.Context) ([]*entities.ProcessingRecord, error)
}
