package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// IngestionCommitter writes a merged record to the backing store.
type IngestionCommitter struct {
	connector driven.RecordStoreConnector
}

// NewIngestionCommitter creates a committer. The connection is opened on
// Commit, never before.
func NewIngestionCommitter(connector driven.RecordStoreConnector) *IngestionCommitter {
	return &IngestionCommitter{connector: connector}
}

// RecordKey is the upsert key of rec: its id field, or else the identity
// derived from its bedfile_path.
func RecordKey(rec *domain.Record) string {
	if id := rec.ID(); id != "" {
		return id
	}
	if p := rec.BedfilePath(); p != "" {
		return FileIdentityOf(p).String()
	}
	return ""
}

// Commit opens a store connection and upserts rec once. Failures are not
// retried.
func (c *IngestionCommitter) Commit(ctx context.Context, rc *RunContext, rec *domain.Record) error {
	key := RecordKey(rec)
	if key == "" {
		return fmt.Errorf("%w: record has no id or %s", domain.ErrStoreWrite, domain.BedfilePathKey)
	}
	if c.connector == nil {
		return fmt.Errorf("%w: no store configured", domain.ErrStoreConnection)
	}

	store, err := c.connector.Connect(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreConnection) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreConnection, err)
		}
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			rc.Log.Warn("closing store", "error", cerr.Error())
		}
	}()

	if err := store.Upsert(ctx, key, rec); err != nil {
		if !errors.Is(err, domain.ErrStoreWrite) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
		}
		return err
	}

	rc.Log.Info("record committed", "id", key)
	return nil
}
