package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService reads committed records. Each call opens and closes its
// own connection.
type RecordService struct {
	connector driven.RecordStoreConnector
}

// NewRecordService creates a new record service.
func NewRecordService(connector driven.RecordStoreConnector) *RecordService {
	return &RecordService{connector: connector}
}

// Get retrieves one record by file identity.
func (s *RecordService) Get(ctx context.Context, id string) (*domain.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}
	var rec *domain.Record
	err := s.withStore(ctx, func(store driven.RecordStore) error {
		var err error
		rec, err = store.Get(ctx, id)
		return err
	})
	return rec, err
}

// List returns the identities of all committed records.
func (s *RecordService) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.withStore(ctx, func(store driven.RecordStore) error {
		var err error
		ids, err = store.List(ctx)
		return err
	})
	return ids, err
}

// Search returns identities whose top-level key equals value.
func (s *RecordService) Search(ctx context.Context, key, value string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: search key is required", domain.ErrInvalidInput)
	}
	var ids []string
	err := s.withStore(ctx, func(store driven.RecordStore) error {
		var err error
		ids, err = store.Search(ctx, key, value)
		return err
	})
	return ids, err
}

func (s *RecordService) withStore(ctx context.Context, fn func(driven.RecordStore) error) (err error) {
	if s.connector == nil {
		return fmt.Errorf("%w: no store configured", domain.ErrStoreConnection)
	}
	store, err := s.connector.Connect(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreConnection) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreConnection, err)
		}
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()
	return fn(store)
}
