// File:         pkg/actionplan/delta.go
// Description:  Delta-mode plan assembly: id-set differences for
//               creates and deletes, per-field diffs for updates, and
//               independent x/y diffs for moves.
//
package actionplan

import (
	"fmt"
	"reflect"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

func (b *Builder) buildDelta(current, prev *model.Graph) []schemas.Action {
	var actions []schemas.Action

	prevBlocks := make(map[string]*model.Block, len(prev.Blocks))
	for i := range prev.Blocks {
		prevBlocks[prev.Blocks[i].ID] = &prev.Blocks[i]
	}
	currentBlocks := make(map[string]*model.Block, len(current.Blocks))
	for i := range current.Blocks {
		currentBlocks[current.Blocks[i].ID] = &current.Blocks[i]
	}

	// Connection deletes come first so block deletes never orphan them.
	currentConns := make(map[string]*model.Connection, len(current.Connections))
	for i := range current.Connections {
		currentConns[current.Connections[i].ID] = &current.Connections[i]
	}
	for i := range prev.Connections {
		c := &prev.Connections[i]
		if _, kept := currentConns[c.ID]; !kept {
			actions = append(actions, schemas.Action{
				Type:        schemas.ActionDeleteConnection,
				TargetID:    c.ID,
				TargetType:  schemas.TargetConnection,
				Description: fmt.Sprintf("Delete connection %s -> %s", c.FromBlock, c.ToBlock),
				Priority:    priorityDeleteConnection,
			})
		}
	}

	// Removed blocks. Deletes precede creates to free identifiers.
	for i := range prev.Blocks {
		blk := &prev.Blocks[i]
		if _, kept := currentBlocks[blk.ID]; !kept {
			actions = append(actions, schemas.Action{
				Type:        schemas.ActionDeleteBlock,
				TargetID:    blk.ID,
				TargetType:  schemas.TargetBlock,
				Description: fmt.Sprintf("Delete block %q", blk.Name),
				Priority:    priorityDeleteBlock,
			})
		}
	}

	// Added and surviving blocks.
	for i := range current.Blocks {
		blk := &current.Blocks[i]
		old, existed := prevBlocks[blk.ID]
		if !existed {
			actions = append(actions, createBlockAction(blk))
			for j := range blk.Ports {
				actions = append(actions, createPortAction(&blk.Ports[j]))
			}
			continue
		}
		actions = append(actions, b.blockChanges(old, blk)...)
	}

	// Added connections.
	prevConns := make(map[string]struct{}, len(prev.Connections))
	for i := range prev.Connections {
		prevConns[prev.Connections[i].ID] = struct{}{}
	}
	for i := range current.Connections {
		c := &current.Connections[i]
		if _, existed := prevConns[c.ID]; !existed {
			actions = append(actions, createConnectionAction(c))
		}
	}

	return actions
}

// blockChanges emits field updates, moves, and port create/delete
// actions for one surviving block.
func (b *Builder) blockChanges(old, current *model.Block) []schemas.Action {
	var actions []schemas.Action

	changed := map[string]interface{}{}
	if old.Name != current.Name {
		changed["name"] = current.Name
	}
	if old.Type != current.Type {
		changed["type"] = current.Type
	}
	if old.Status != current.Status {
		changed["status"] = string(current.Status)
	}
	if !reflect.DeepEqual(old.Attributes, current.Attributes) {
		changed["attributes"] = map[string]interface{}(current.Attributes)
	}
	if len(changed) > 0 {
		actions = append(actions, schemas.Action{
			Type:        schemas.ActionUpdateBlock,
			TargetID:    current.ID,
			TargetType:  schemas.TargetBlock,
			Description: fmt.Sprintf("Update block %q", current.Name),
			Priority:    priorityUpdateBlock,
			Params:      changed,
		})
	}

	// x and y diff independently; either alone is a move.
	if old.X != current.X || old.Y != current.Y {
		actions = append(actions, schemas.Action{
			Type:        schemas.ActionMoveBlock,
			TargetID:    current.ID,
			TargetType:  schemas.TargetBlock,
			Description: fmt.Sprintf("Move block %q", current.Name),
			Priority:    priorityMoveBlock,
			Params: map[string]interface{}{
				"old_x": old.X, "old_y": old.Y,
				"x": current.X, "y": current.Y,
			},
		})
	}

	oldPorts := make(map[string]struct{}, len(old.Ports))
	for i := range old.Ports {
		oldPorts[old.Ports[i].ID] = struct{}{}
	}
	currentPorts := make(map[string]struct{}, len(current.Ports))
	for i := range current.Ports {
		currentPorts[current.Ports[i].ID] = struct{}{}
	}
	for i := range old.Ports {
		p := &old.Ports[i]
		if _, kept := currentPorts[p.ID]; !kept {
			actions = append(actions, schemas.Action{
				Type:        schemas.ActionDeletePort,
				TargetID:    p.ID,
				TargetType:  schemas.TargetPort,
				Description: fmt.Sprintf("Delete port %q from block %q", p.Name, current.Name),
				Priority:    priorityDeletePort,
			})
		}
	}
	for i := range current.Ports {
		p := &current.Ports[i]
		if _, existed := oldPorts[p.ID]; !existed {
			actions = append(actions, createPortAction(p))
		}
	}

	return actions
}
