// File: pkg/actionplan/delta_test.go
package actionplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

func TestBuildDeltaNoChanges(t *testing.T) {
	g := demoGraph()
	plan := New(nil).Build(g, g.Clone(), Options{})

	require.Len(t, plan, 1, "an unchanged graph only saves")
	assert.Equal(t, schemas.ActionSaveDocument, plan[0].Type)
}

func TestBuildDeltaAddedBlock(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	added := model.NewBlock("c", "Logger", "storage")
	added.AddPort(model.NewPort("c.in", "IN", schemas.DirectionInput, schemas.PortKindData))
	current.AddBlock(added)

	plan := New(nil).Build(current, prev, Options{})
	assert.Equal(t, []schemas.ActionType{
		schemas.ActionCreateBlock,
		schemas.ActionCreatePort,
		schemas.ActionSaveDocument,
	}, typesOf(plan))
	assert.Equal(t, "c", plan[0].TargetID)
}

func TestBuildDeltaDeletedBlockWithConnections(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	current.RemoveBlock("b")

	plan := New(nil).Build(current, prev, Options{})
	// The connection delete is ordered before the block delete.
	assert.Equal(t, []schemas.ActionType{
		schemas.ActionDeleteConnection,
		schemas.ActionDeleteBlock,
		schemas.ActionSaveDocument,
	}, typesOf(plan))
	assert.Equal(t, "b", plan[1].TargetID)
}

// A block replaced by a different block with a fresh id deletes the old
// one before creating the new one.
func TestBuildDeltaDeleteBeforeCreate(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	current.RemoveBlock("b")
	current.AddBlock(model.NewBlock("b2", "Controller v2", "mcu"))

	plan := New(nil).Build(current, prev, Options{})
	assert.Equal(t, []schemas.ActionType{
		schemas.ActionDeleteConnection,
		schemas.ActionDeleteBlock,
		schemas.ActionCreateBlock,
		schemas.ActionSaveDocument,
	}, typesOf(plan))
}

func TestBuildDeltaFieldUpdates(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	blk := current.BlockByID("a")
	require.NotNil(t, blk)
	blk.Name = "Sensor v2"
	blk.Status = schemas.StatusImplemented
	blk.Attributes = model.Attributes{"mass": 1.0}

	plan := New(nil).Build(current, prev, Options{})
	updates := filterByType(plan, schemas.ActionUpdateBlock)
	require.Len(t, updates, 1)

	params := updates[0].Params
	assert.Equal(t, "Sensor v2", params["name"])
	assert.Equal(t, "implemented", params["status"])
	assert.Contains(t, params, "attributes")
	assert.NotContains(t, params, "type", "unchanged fields are omitted")
}

func TestBuildDeltaMove(t *testing.T) {
	t.Run("x only", func(t *testing.T) {
		prev := demoGraph()
		current := prev.Clone()
		current.BlockByID("a").X = 42

		plan := New(nil).Build(current, prev, Options{})
		moves := filterByType(plan, schemas.ActionMoveBlock)
		require.Len(t, moves, 1)
		assert.Equal(t, 42.0, moves[0].Params["x"])
		assert.Equal(t, 0.0, moves[0].Params["old_x"])
		assert.Empty(t, filterByType(plan, schemas.ActionUpdateBlock),
			"a pure move is not an update")
	})

	t.Run("y only", func(t *testing.T) {
		prev := demoGraph()
		current := prev.Clone()
		current.BlockByID("a").Y = 7

		plan := New(nil).Build(current, prev, Options{})
		require.Len(t, filterByType(plan, schemas.ActionMoveBlock), 1)
	})
}

func TestBuildDeltaPortChanges(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	blk := current.BlockByID("a")
	require.NotNil(t, blk)
	require.True(t, blk.RemovePort("a.out"))
	blk.AddPort(model.NewPort("a.out2", "OUT2", schemas.DirectionOutput, schemas.PortKindData))

	plan := New(nil).Build(current, prev, Options{})

	deletes := filterByType(plan, schemas.ActionDeletePort)
	require.Len(t, deletes, 1)
	assert.Equal(t, "a.out", deletes[0].TargetID)

	creates := filterByType(plan, schemas.ActionCreatePort)
	require.Len(t, creates, 1)
	assert.Equal(t, "a.out2", creates[0].TargetID)
	assert.Equal(t, []string{"a"}, creates[0].DependsOn)

	// Port deletes run before block-level creates and port creates.
	assert.Equal(t, schemas.ActionDeletePort, plan[0].Type)
}

func TestBuildDeltaConnectionChanges(t *testing.T) {
	prev := demoGraph()
	current := prev.Clone()
	require.True(t, current.RemoveConnection(current.Connections[0].ID))
	current.AddConnection(model.NewConnection("c-new", "b", "b.in", "a", "a.out"))

	plan := New(nil).Build(current, prev, Options{})
	assert.Equal(t, []schemas.ActionType{
		schemas.ActionDeleteConnection,
		schemas.ActionCreateConnection,
		schemas.ActionSaveDocument,
	}, typesOf(plan))
	assert.Equal(t, "c-new", plan[1].TargetID)
}
