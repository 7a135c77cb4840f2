// File:         pkg/actionplan/actionplan.go
// Description:  Turns "previous graph vs. current graph" into an
//               ordered list of synchronization actions for an external
//               executor. Priorities guarantee that a naive executor
//               iterating the sorted plan never creates a connection
//               before its endpoints exist, nor orphans a deleted
//               block's dependents.
//
package actionplan

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

// Priorities. Deletes run before creates so identifiers are freed, and
// connection deletes precede block deletes.
const (
	priorityDeleteConnection = 3
	priorityDeletePort       = 4
	priorityDeleteBlock      = 5
	priorityCreateBlock      = 10
	priorityUpdateBlock      = 15
	priorityMoveBlock        = 15
	priorityCreatePort       = 20
	priorityCreateConnection = 30
	prioritySyncCAD          = 50
	prioritySave             = 900
	priorityRefresh          = 1000
)

// Options controls plan assembly.
type Options struct {
	// IncludeRefresh appends a refresh action after the save action.
	IncludeRefresh bool
}

// DefaultOptions returns the options used when callers pass none.
func DefaultOptions() Options {
	return Options{IncludeRefresh: true}
}

// Builder assembles action plans.
type Builder struct {
	log *zap.Logger
}

// New creates a builder. A nil logger falls back to a nop logger.
func New(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{log: logger.Named("actionplan")}
}

// Build reconciles prev into current. A nil prev materializes the full
// graph. The returned list is stable-sorted by priority ascending;
// ties preserve insertion order.
func (b *Builder) Build(current, prev *model.Graph, opts Options) []schemas.Action {
	var actions []schemas.Action

	if prev == nil {
		actions = b.buildFull(current)
	} else {
		actions = b.buildDelta(current, prev)
	}

	actions = append(actions, b.cadSyncActions(current)...)

	actions = append(actions, schemas.Action{
		Type:        schemas.ActionSaveDocument,
		TargetID:    current.ID,
		TargetType:  schemas.TargetDocument,
		Description: "Save the document",
		Priority:    prioritySave,
	})
	if opts.IncludeRefresh {
		actions = append(actions, schemas.Action{
			Type:        schemas.ActionRefreshView,
			TargetID:    current.ID,
			TargetType:  schemas.TargetDocument,
			Description: "Refresh the host view",
			Priority:    priorityRefresh,
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority < actions[j].Priority
	})

	b.log.Debug("Action plan built",
		zap.String("graph_id", current.ID),
		zap.Bool("delta", prev != nil),
		zap.Int("actions", len(actions)),
	)
	return actions
}

// buildFull emits create actions for every block, port, and connection.
func (b *Builder) buildFull(g *model.Graph) []schemas.Action {
	var actions []schemas.Action
	for i := range g.Blocks {
		blk := &g.Blocks[i]
		actions = append(actions, createBlockAction(blk))
		for j := range blk.Ports {
			actions = append(actions, createPortAction(&blk.Ports[j]))
		}
	}
	for i := range g.Connections {
		actions = append(actions, createConnectionAction(&g.Connections[i]))
	}
	return actions
}

func createBlockAction(blk *model.Block) schemas.Action {
	return schemas.Action{
		Type:        schemas.ActionCreateBlock,
		TargetID:    blk.ID,
		TargetType:  schemas.TargetBlock,
		Description: fmt.Sprintf("Create block %q", blk.Name),
		Priority:    priorityCreateBlock,
		Params: map[string]interface{}{
			"name":   blk.Name,
			"type":   blk.Type,
			"x":      blk.X,
			"y":      blk.Y,
			"status": string(blk.Status),
		},
	}
}

func createPortAction(p *model.Port) schemas.Action {
	return schemas.Action{
		Type:        schemas.ActionCreatePort,
		TargetID:    p.ID,
		TargetType:  schemas.TargetPort,
		Description: fmt.Sprintf("Create port %q on block %s", p.Name, p.BlockID),
		Priority:    priorityCreatePort,
		DependsOn:   []string{p.BlockID},
		Params: map[string]interface{}{
			"name":      p.Name,
			"direction": string(p.Direction),
			"kind":      string(p.Kind),
			"side":      p.Side,
			"index":     p.Index,
		},
	}
}

func createConnectionAction(c *model.Connection) schemas.Action {
	return schemas.Action{
		Type:        schemas.ActionCreateConnection,
		TargetID:    c.ID,
		TargetType:  schemas.TargetConnection,
		Description: fmt.Sprintf("Create connection %s -> %s", c.FromBlock, c.ToBlock),
		Priority:    priorityCreateConnection,
		DependsOn:   []string{c.FromBlock, c.ToBlock},
		Params: map[string]interface{}{
			"from_block": c.FromBlock,
			"from_port":  c.FromPort,
			"to_block":   c.ToBlock,
			"to_port":    c.ToPort,
			"kind":       c.Kind,
		},
	}
}

// cadSyncActions emits one sync action per CAD-kind link, regardless of
// build mode. The engine only produces these; the host resolves them.
func (b *Builder) cadSyncActions(g *model.Graph) []schemas.Action {
	var actions []schemas.Action
	for i := range g.Blocks {
		blk := &g.Blocks[i]
		for _, link := range blk.CADLinks() {
			actions = append(actions, schemas.Action{
				Type:        schemas.ActionSyncCADProperties,
				TargetID:    blk.ID,
				TargetType:  schemas.TargetBlock,
				Description: fmt.Sprintf("Sync CAD properties for block %q", blk.Name),
				Priority:    prioritySyncCAD,
				Params: map[string]interface{}{
					"link_target": link.Target,
					"link_label":  link.Label,
				},
			})
		}
	}
	return actions
}
