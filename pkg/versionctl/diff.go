// File:         pkg/versionctl/diff.go
// Description:  Structural comparison of two graphs using content
//               fingerprints for block modification detection.
//
package versionctl

import (
	"github.com/veldtworks/blockgraph/pkg/model"
)

// ConnectionChange records one modified field on a surviving connection.
type ConnectionChange struct {
	ConnectionID string      `json:"connection_id"`
	Field        string      `json:"field"`
	OldValue     interface{} `json:"old_value"`
	NewValue     interface{} `json:"new_value"`
}

// DiffResult is the derived comparison of two graphs. It is computed on
// demand and never stored.
type DiffResult struct {
	AddedBlocks         []string           `json:"added_blocks"`
	RemovedBlocks       []string           `json:"removed_blocks"`
	ModifiedBlocks      []string           `json:"modified_blocks"`
	AddedConnections    []string           `json:"added_connections"`
	RemovedConnections  []string           `json:"removed_connections"`
	ModifiedConnections []ConnectionChange `json:"modified_connections"`
}

// Empty reports whether the two graphs compared structurally identical.
func (d *DiffResult) Empty() bool {
	return len(d.AddedBlocks) == 0 && len(d.RemovedBlocks) == 0 && len(d.ModifiedBlocks) == 0 &&
		len(d.AddedConnections) == 0 && len(d.RemovedConnections) == 0 && len(d.ModifiedConnections) == 0
}

// DiffGraphs compares two graphs. Block modification is detected by
// fingerprint comparison over the id intersection; connections are
// compared field by field (endpoints and kind).
func DiffGraphs(oldGraph, newGraph *model.Graph) *DiffResult {
	result := &DiffResult{}

	oldBlocks := make(map[string]*model.Block, len(oldGraph.Blocks))
	for i := range oldGraph.Blocks {
		oldBlocks[oldGraph.Blocks[i].ID] = &oldGraph.Blocks[i]
	}
	newBlocks := make(map[string]*model.Block, len(newGraph.Blocks))
	for i := range newGraph.Blocks {
		newBlocks[newGraph.Blocks[i].ID] = &newGraph.Blocks[i]
	}

	for i := range newGraph.Blocks {
		b := &newGraph.Blocks[i]
		old, existed := oldBlocks[b.ID]
		switch {
		case !existed:
			result.AddedBlocks = append(result.AddedBlocks, b.ID)
		case model.Fingerprint(old) != model.Fingerprint(b):
			result.ModifiedBlocks = append(result.ModifiedBlocks, b.ID)
		}
	}
	for i := range oldGraph.Blocks {
		if _, kept := newBlocks[oldGraph.Blocks[i].ID]; !kept {
			result.RemovedBlocks = append(result.RemovedBlocks, oldGraph.Blocks[i].ID)
		}
	}

	oldConns := make(map[string]*model.Connection, len(oldGraph.Connections))
	for i := range oldGraph.Connections {
		oldConns[oldGraph.Connections[i].ID] = &oldGraph.Connections[i]
	}
	newConns := make(map[string]*model.Connection, len(newGraph.Connections))
	for i := range newGraph.Connections {
		newConns[newGraph.Connections[i].ID] = &newGraph.Connections[i]
	}

	for i := range newGraph.Connections {
		c := &newGraph.Connections[i]
		old, existed := oldConns[c.ID]
		if !existed {
			result.AddedConnections = append(result.AddedConnections, c.ID)
			continue
		}
		result.ModifiedConnections = append(result.ModifiedConnections, connectionChanges(old, c)...)
	}
	for i := range oldGraph.Connections {
		if _, kept := newConns[oldGraph.Connections[i].ID]; !kept {
			result.RemovedConnections = append(result.RemovedConnections, oldGraph.Connections[i].ID)
		}
	}

	return result
}

func connectionChanges(old, current *model.Connection) []ConnectionChange {
	var changes []ConnectionChange
	record := func(field string, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, ConnectionChange{
				ConnectionID: current.ID,
				Field:        field,
				OldValue:     oldVal,
				NewValue:     newVal,
			})
		}
	}
	record("from_block", old.FromBlock, current.FromBlock)
	record("from_port", old.FromPort, current.FromPort)
	record("to_block", old.ToBlock, current.ToBlock)
	record("to_port", old.ToPort, current.ToPort)
	record("kind", old.Kind, current.Kind)
	return changes
}
