// Package inmemorystore provides a thread-safe, in-memory implementation of
// the mappingstore.Store interface. It is suitable for development, testing,
// or any scenario where mappings do not need to outlive the process.
//
// Snapshots are stored encoded, exactly as a persistent store would hold
// them, so a Load always returns a fresh copy and exercises the codec.
package inmemorystore
