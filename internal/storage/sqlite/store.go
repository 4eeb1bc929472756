// Package sqlite provides a SQLite-backed persistent mapping store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"github.com/specialistvlad/contentgrid/internal/storage/sqlite/migrations"
	"github.com/specialistvlad/contentgrid/internal/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists registry snapshots in SQLite. Only the most recently saved
// fingerprint is kept.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite mapping store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, contenterr.New(contenterr.CodeConfig, "mapping path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the snapshot stored for fingerprint.
func (s *Store) Load(ctx context.Context, fingerprint string) (*registry.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, contenterr.New(contenterr.CodeMappingUnavailable, "mapping store is not configured")
	}

	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM registry_mappings WHERE fingerprint = ?`,
		fingerprint,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contenterr.New(contenterr.CodeMappingUnavailable, "no mapping for fingerprint").
			With("fingerprint", fingerprint)
	}
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeMappingUnavailable, "failed to read mapping", err).
			With("fingerprint", fingerprint)
	}

	snapshot, err := registry.DecodeSnapshot(payload)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeMappingUnavailable, "stored mapping is unreadable", err).
			With("fingerprint", fingerprint)
	}
	return snapshot, nil
}

// Save replaces the stored mapping with snapshot under fingerprint.
func (s *Store) Save(ctx context.Context, fingerprint string, snapshot *registry.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(fingerprint) == "" {
		return fmt.Errorf("fingerprint is required")
	}

	payload, err := registry.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registry_mappings WHERE fingerprint <> ?`, fingerprint); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prune mappings: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registry_mappings (fingerprint, payload, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		fingerprint, payload, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save mapping: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mapping: %w", err)
	}
	return nil
}
