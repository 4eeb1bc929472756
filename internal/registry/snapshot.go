package registry

import (
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion is bumped whenever the encoded layout changes.
const snapshotVersion = 1

// Snapshot is the serialisable form of a Registry. Records are ordered by id.
type Snapshot struct {
	Version       int                        `msgpack:"version"`
	Tiles         []content.TileType         `msgpack:"tiles"`
	Grounds       []content.GroundType       `msgpack:"grounds"`
	Items         []content.ItemType         `msgpack:"items"`
	VisibleThings []content.VisibleThingType `msgpack:"visible_things"`
	Things        []content.ThingType        `msgpack:"things"`
	ByteStreams   []content.ByteStreamType   `msgpack:"byte_streams"`
}

// Snapshot exports the registry.
func (r *Registry) Snapshot() *Snapshot {
	return &Snapshot{
		Version:       snapshotVersion,
		Tiles:         r.tiles.sorted(),
		Grounds:       r.grounds.sorted(),
		Items:         r.items.sorted(),
		VisibleThings: r.visibleThings.sorted(),
		Things:        r.things.sorted(),
		ByteStreams:   r.byteStreams.sorted(),
	}
}

// FromSnapshot rebuilds a registry, validating the same invariants as a
// fresh assembly.
func FromSnapshot(s *Snapshot) (*Registry, error) {
	if s == nil {
		return nil, fmt.Errorf("registry: nil snapshot")
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("registry: unsupported snapshot version %d", s.Version)
	}

	a := NewAssembler()
	if err := addAll(a, s.Tiles); err != nil {
		return nil, err
	}
	if err := addAll(a, s.Grounds); err != nil {
		return nil, err
	}
	if err := addAll(a, s.Items); err != nil {
		return nil, err
	}
	if err := addAll(a, s.VisibleThings); err != nil {
		return nil, err
	}
	if err := addAll(a, s.Things); err != nil {
		return nil, err
	}
	if err := addAll(a, s.ByteStreams); err != nil {
		return nil, err
	}
	return a.Registry(), nil
}

func addAll[T content.Record](a *Assembler, records []T) error {
	for _, rec := range records {
		if err := a.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// EncodeSnapshot serialises a snapshot with msgpack.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode registry snapshot: %w", err)
	}
	return &s, nil
}
