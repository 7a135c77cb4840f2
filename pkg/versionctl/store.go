// File:         pkg/versionctl/store.go
// Description:  Ordered, capacity-bounded snapshot history with a flat
//               persistence representation.
//
package versionctl

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veldtworks/blockgraph/pkg/model"
)

// DefaultMaxSnapshots bounds the history when callers pass zero.
const DefaultMaxSnapshots = 50

// SnapshotStore holds an ordered snapshot history. Oldest entries are
// evicted once the history grows past capacity. The store is not
// internally synchronized; concurrent callers must serialize access.
type SnapshotStore struct {
	snapshots    []*Snapshot
	maxSnapshots int
	log          *zap.Logger
}

// NewSnapshotStore creates a store with the given capacity. A
// non-positive capacity falls back to DefaultMaxSnapshots. A nil logger
// falls back to a nop logger.
func NewSnapshotStore(maxSnapshots int, logger *zap.Logger) *SnapshotStore {
	if maxSnapshots <= 0 {
		maxSnapshots = DefaultMaxSnapshots
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotStore{
		maxSnapshots: maxSnapshots,
		log:          logger.Named("snapshots"),
	}
}

// Len returns the number of held snapshots.
func (s *SnapshotStore) Len() int { return len(s.snapshots) }

// List returns the snapshots in capture order. The returned slice is a
// copy; the snapshots themselves are immutable.
func (s *SnapshotStore) List() []*Snapshot {
	out := make([]*Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// Add appends a snapshot and evicts the oldest entry once over
// capacity.
func (s *SnapshotStore) Add(snap *Snapshot) {
	s.snapshots = append(s.snapshots, snap)
	for len(s.snapshots) > s.maxSnapshots {
		evicted := s.snapshots[0]
		s.snapshots = s.snapshots[1:]
		s.log.Debug("Evicted oldest snapshot", zap.String("snapshot_id", evicted.ID))
	}
}

// Capture serializes the graph and appends the resulting snapshot.
func (s *SnapshotStore) Capture(g *model.Graph, author, description string) (*Snapshot, error) {
	snap, err := CreateSnapshot(g, author, description)
	if err != nil {
		return nil, err
	}
	s.Add(snap)
	return snap, nil
}

// Get returns the snapshot with the given id.
func (s *SnapshotStore) Get(id string) (*Snapshot, error) {
	for _, snap := range s.snapshots {
		if snap.ID == id {
			return snap, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
}

// Restore deserializes the snapshot with the given id into an
// independent graph.
func (s *SnapshotStore) Restore(id string) (*model.Graph, error) {
	snap, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return RestoreSnapshot(snap)
}

// Compare diffs the graphs held by two snapshots.
func (s *SnapshotStore) Compare(oldID, newID string) (*DiffResult, error) {
	oldGraph, err := s.Restore(oldID)
	if err != nil {
		return nil, err
	}
	newGraph, err := s.Restore(newID)
	if err != nil {
		return nil, err
	}
	return DiffGraphs(oldGraph, newGraph), nil
}

// SnapshotRecord is the flat persistence representation of one
// snapshot.
type SnapshotRecord struct {
	ID          string    `json:"id"`
	Payload     []byte    `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ToList flattens the history for persistence.
func (s *SnapshotStore) ToList() []SnapshotRecord {
	out := make([]SnapshotRecord, len(s.snapshots))
	for i, snap := range s.snapshots {
		out[i] = SnapshotRecord{
			ID:          snap.ID,
			Payload:     snap.Payload,
			CreatedAt:   snap.CreatedAt,
			Author:      snap.Author,
			Description: snap.Description,
		}
	}
	return out
}

// FromList replaces the history with the given records, re-applying the
// capacity bound.
func (s *SnapshotStore) FromList(records []SnapshotRecord) {
	s.snapshots = s.snapshots[:0]
	for _, r := range records {
		s.Add(&Snapshot{
			ID:          r.ID,
			Payload:     r.Payload,
			CreatedAt:   r.CreatedAt,
			Author:      r.Author,
			Description: r.Description,
		})
	}
}
