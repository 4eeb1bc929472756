package inmemorystore

import (
	"context"
	"sync"

	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/mappingstore"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

// Store is an in-memory implementation of mappingstore.Store.
type Store struct {
	mu       sync.RWMutex
	mappings map[string][]byte // Key: fingerprint, Value: encoded snapshot
	closed   bool
}

// New creates a new, empty in-memory mapping store.
func New() mappingstore.Store {
	return &Store{mappings: make(map[string][]byte)}
}

// Load returns the snapshot saved under fingerprint.
func (s *Store) Load(ctx context.Context, fingerprint string) (*registry.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.mappings[fingerprint]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return nil, contenterr.New(contenterr.CodeMappingUnavailable, "mapping store is closed")
	}
	if !ok {
		return nil, contenterr.New(contenterr.CodeMappingUnavailable, "no mapping for fingerprint").
			With("fingerprint", fingerprint)
	}

	snapshot, err := registry.DecodeSnapshot(data)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeMappingUnavailable, "stored mapping is unreadable", err).
			With("fingerprint", fingerprint)
	}
	return snapshot, nil
}

// Save stores snapshot under fingerprint, replacing any previous value.
func (s *Store) Save(ctx context.Context, fingerprint string, snapshot *registry.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := registry.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return contenterr.New(contenterr.CodeMappingUnavailable, "mapping store is closed")
	}
	s.mappings[fingerprint] = data
	return nil
}

// Close drops every stored mapping.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.mappings = nil
	return nil
}
