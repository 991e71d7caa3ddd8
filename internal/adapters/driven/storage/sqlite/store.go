package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// DBFileName is the database file inside the data directory.
const DBFileName = "bedstat.db"

// searchKeyPattern limits search keys to plain identifiers so they can be
// turned into JSON paths.
var searchKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is a SQLite-based record store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.bedstat/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bedstat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL lets readers proceed while a pipeline run writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
// Closing it closes the store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_bedfiles.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

// Upsert inserts or replaces the record stored under id.
func (s *recordStore) Upsert(ctx context.Context, id string, rec *domain.Record) error {
	if id == "" {
		return fmt.Errorf("%w: empty record id", domain.ErrStoreWrite)
	}
	if rec.BedfilePath() == "" {
		return fmt.Errorf("%w: record %s has no %s", domain.ErrStoreWrite, id, domain.BedfilePathKey)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshalling record: %w", domain.ErrStoreWrite, err)
	}

	now := s.store.now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO bedfiles (id, bedfile_path, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bedfile_path = excluded.bedfile_path,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, id, rec.BedfilePath(), string(data), now, now)
	if err != nil {
		return fmt.Errorf("%w: saving record: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

// Get retrieves a record by id.
func (s *recordStore) Get(ctx context.Context, id string) (*domain.Record, error) {
	var data string
	err := s.store.db.QueryRowContext(ctx, `SELECT data FROM bedfiles WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	rec := domain.NewRecord()
	if err := rec.UnmarshalJSON([]byte(data)); err != nil {
		return nil, fmt.Errorf("unmarshaling record %s: %w", id, err)
	}
	return rec, nil
}

// List returns all record ids in sorted order.
func (s *recordStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT id FROM bedfiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return scanIDs(rows)
}

// Search returns the ids of records whose top-level key equals value.
// Non-string values are compared by their SQLite text rendering.
func (s *recordStore) Search(ctx context.Context, key, value string) ([]string, error) {
	if !searchKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: search key %q", domain.ErrInvalidInput, key)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id FROM bedfiles
		WHERE CAST(json_extract(data, ?) AS TEXT) = ?
		ORDER BY id
	`, "$."+key, value)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	return scanIDs(rows)
}

// Close closes the underlying store.
func (s *recordStore) Close() error {
	return s.store.Close()
}

// scanIDs drains rows of a single id column.
func scanIDs(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return ids, nil
}

// ==================== Connector ====================

// Connector opens the store in DataDir on demand.
type Connector struct {
	DataDir string
}

var _ driven.RecordStoreConnector = (*Connector)(nil)

// NewConnector creates a connector for the store in dataDir.
func NewConnector(dataDir string) *Connector {
	return &Connector{DataDir: dataDir}
}

// Connect opens the database and runs pending migrations.
func (c *Connector) Connect(ctx context.Context) (driven.RecordStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreConnection, err)
	}
	store, err := NewStore(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreConnection, err)
	}
	return store.RecordStore(), nil
}
