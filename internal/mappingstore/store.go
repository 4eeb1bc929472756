// Package mappingstore defines the persistent mapping interface: a cache of
// registry snapshots keyed by the fingerprint of the module tree they were
// built from.
package mappingstore

import (
	"context"

	"github.com/specialistvlad/contentgrid/internal/registry"
)

// Store persists registry snapshots.
//
// Load returns an error matching contenterr.ErrMappingUnavailable when no
// usable snapshot exists for fingerprint, including when the stored data
// cannot be decoded. Callers treat that as a cache miss.
type Store interface {
	Load(ctx context.Context, fingerprint string) (*registry.Snapshot, error)
	Save(ctx context.Context, fingerprint string, snapshot *registry.Snapshot) error
	Close() error
}
