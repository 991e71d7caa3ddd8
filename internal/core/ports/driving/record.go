package driving

import (
	"context"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// RecordService reads committed records back from the store.
type RecordService interface {
	// Get retrieves one record by file identity.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// List returns the identities of all committed records.
	List(ctx context.Context) ([]string, error)

	// Search returns identities whose top-level key equals value.
	Search(ctx context.Context, key, value string) ([]string, error)
}
