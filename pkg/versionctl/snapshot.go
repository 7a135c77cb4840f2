// File:         pkg/versionctl/snapshot.go
// Description:  Immutable graph snapshots. A snapshot owns an
//               independent serialized copy of the graph; restoring
//               always yields a fresh, unshared model.
//
package versionctl

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veldtworks/blockgraph/pkg/model"
)

// ErrEmptySnapshot signals a restore attempt on a snapshot that holds
// no payload.
var ErrEmptySnapshot = errors.New("snapshot holds no payload")

// ErrSnapshotNotFound signals an unknown snapshot id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is an immutable captured graph state. It is never mutated
// after creation and is therefore safe to share across goroutines.
type Snapshot struct {
	ID          string    `json:"id"`
	Payload     []byte    `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
}

// CreateSnapshot serializes the graph into a new snapshot.
func CreateSnapshot(g *model.Graph, author, description string) (*Snapshot, error) {
	payload, err := model.Serialize(g)
	if err != nil {
		return nil, fmt.Errorf("failed to capture snapshot: %w", err)
	}
	return &Snapshot{
		ID:          uuid.NewString(),
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
		Author:      author,
		Description: description,
	}, nil
}

// RestoreSnapshot deserializes the snapshot into an independent graph.
func RestoreSnapshot(s *Snapshot) (*model.Graph, error) {
	if s == nil || len(s.Payload) == 0 {
		return nil, ErrEmptySnapshot
	}
	g, err := model.Deserialize(s.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to restore snapshot %s: %w", s.ID, err)
	}
	return g, nil
}
