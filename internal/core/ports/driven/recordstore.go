package driven

import (
	"context"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// RecordStore persists merged records.
// Backed by SQLite in production.
type RecordStore interface {
	// Upsert inserts the record under id, replacing any existing record.
	Upsert(ctx context.Context, id string, rec *domain.Record) error

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// List returns all record ids in sorted order.
	List(ctx context.Context) ([]string, error)

	// Search returns the ids of records whose top-level key equals value.
	Search(ctx context.Context, key, value string) ([]string, error)

	// Close releases the connection.
	Close() error
}

// RecordStoreConnector opens a RecordStore on demand. The pipeline calls
// Connect at most once per run and never when the commit is skipped.
type RecordStoreConnector interface {
	Connect(ctx context.Context) (RecordStore, error)
}
