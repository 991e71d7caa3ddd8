package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are stored as JSON so callers cannot mutate stored state.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	writes  int
	closed  int

	// WriteErr, when set, is returned by every Upsert.
	WriteErr error
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string][]byte)}
}

// Upsert stores or replaces a record.
func (s *RecordStore) Upsert(_ context.Context, id string, rec *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if id == "" {
		return fmt.Errorf("%w: empty record id", domain.ErrStoreWrite)
	}
	if rec.BedfilePath() == "" {
		return fmt.Errorf("%w: record %s has no %s", domain.ErrStoreWrite, id, domain.BedfilePathKey)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}
	s.records[id] = data
	return nil
}

// Get retrieves a record by id.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec := domain.NewRecord()
	if err := rec.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all record ids in sorted order.
func (s *RecordStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Search returns the ids of records whose top-level key renders as value.
func (s *RecordStore) Search(ctx context.Context, key, value string) ([]string, error) {
	ids, _ := s.List(ctx)
	matches := []string{}
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if v, ok := rec.Field(key); ok && fmt.Sprint(v) == value {
			matches = append(matches, id)
		}
	}
	return matches, nil
}

// Close counts the call; the store stays usable.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// Writes returns the number of Upsert calls, failed ones included.
func (s *RecordStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Closes returns the number of Close calls.
func (s *RecordStore) Closes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Ensure Connector implements the interface.
var _ driven.RecordStoreConnector = (*Connector)(nil)

// Connector hands out a shared in-memory RecordStore and counts connections.
type Connector struct {
	mu       sync.Mutex
	store    *RecordStore
	connects int

	// ConnectErr, when set, is returned by every Connect.
	ConnectErr error
}

// NewConnector creates a connector around store. A nil store gets a new one.
func NewConnector(store *RecordStore) *Connector {
	if store == nil {
		store = NewRecordStore()
	}
	return &Connector{store: store}
}

// Connect returns the shared store.
func (c *Connector) Connect(_ context.Context) (driven.RecordStore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connects++
	if c.ConnectErr != nil {
		return nil, c.ConnectErr
	}
	return c.store, nil
}

// Connects returns the number of Connect calls.
func (c *Connector) Connects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connects
}

// Store returns the backing store.
func (c *Connector) Store() *RecordStore {
	return c.store
}
