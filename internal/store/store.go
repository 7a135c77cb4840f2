// File:         internal/store/store.go
// Description:  PostgreSQL-backed persistence for serialized documents
//               and snapshot history. Pure storage; no engine logic.
//
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/versionctl"
)

// DBPool abstracts the pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store provides a PostgreSQL implementation of the DocumentStore
// boundary plus durable snapshot history.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// Compile-time check that Store satisfies the persistence boundary.
var _ schemas.DocumentStore = (*Store)(nil)

// New creates a store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// SaveDocument upserts a serialized document under the given key.
func (s *Store) SaveDocument(ctx context.Context, key string, payload []byte) error {
	sql := `
        INSERT INTO documents (key, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET
            payload = EXCLUDED.payload,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := s.pool.Exec(ctx, sql, key, payload); err != nil {
		return fmt.Errorf("failed to save document %q: %w", key, err)
	}
	s.log.Debug("Document saved", zap.String("key", key), zap.Int("bytes", len(payload)))
	return nil
}

// LoadDocument retrieves a serialized document. A nil payload with a
// nil error means the key is unknown.
func (s *Store) LoadDocument(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM documents WHERE key = $1;`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load document %q: %w", key, err)
	}
	return payload, nil
}

// SaveSnapshots persists a snapshot history for a document key inside a
// single transaction, replacing any previous history.
func (s *Store) SaveSnapshots(ctx context.Context, key string, records []versionctl.SnapshotRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE document_key = $1;`, key); err != nil {
		return fmt.Errorf("failed to clear snapshot history for %q: %w", key, err)
	}

	batch := &pgx.Batch{}
	sql := `
        INSERT INTO snapshots (id, document_key, payload, author, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	for _, r := range records {
		batch.Queue(sql, r.ID, key, r.Payload, r.Author, r.Description, r.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if br == nil {
		return fmt.Errorf("failed to send batch: batch results is nil")
	}
	for i := range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert snapshot %s (index %d): %w", records[i].ID, i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Debug("Snapshot history saved", zap.String("key", key), zap.Int("snapshots", len(records)))
	return nil
}

// LoadSnapshots retrieves the snapshot history for a document key in
// capture order.
func (s *Store) LoadSnapshots(ctx context.Context, key string) ([]versionctl.SnapshotRecord, error) {
	sql := `
        SELECT id, payload, author, description, created_at
        FROM snapshots
        WHERE document_key = $1
        ORDER BY created_at ASC;
    `
	rows, err := s.pool.Query(ctx, sql, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var records []versionctl.SnapshotRecord
	for rows.Next() {
		var r versionctl.SnapshotRecord
		if err := rows.Scan(&r.ID, &r.Payload, &r.Author, &r.Description, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return records, nil
}
