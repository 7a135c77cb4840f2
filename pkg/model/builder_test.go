// File: pkg/model/builder_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtworks/blockgraph/api/schemas"
)

func TestGraphBuilder(t *testing.T) {
	g := NewGraphBuilder("demo").
		Block("b1", "Sensor", "sensor").
		At(10, 20).
		Status(schemas.StatusInWork).
		Attr("mass", 0.2).
		Link(schemas.LinkKindCAD, "housing", "occ://sensor").
		Port("p1", "OUT", schemas.DirectionOutput, schemas.PortKindData).
		Block("b2", "Controller", "mcu").
		Port("p2", "IN", schemas.DirectionInput, schemas.PortKindData).
		Connect("b1", "p1", "b2", "p2").
		Group("g1", "Sensing", "b1").
		Requirement("mass budget", "mass", ComparatorAtMost, 1.0, "kg").
		Build()

	assert.Equal(t, "demo", g.Name)
	assert.NotEmpty(t, g.ID)

	sensor := g.BlockByID("b1")
	require.NotNil(t, sensor)
	assert.Equal(t, 10.0, sensor.X)
	assert.Equal(t, 20.0, sensor.Y)
	assert.Equal(t, schemas.StatusInWork, sensor.Status)
	assert.Equal(t, 0.2, sensor.Attributes["mass"])
	require.Len(t, sensor.Links, 1)
	require.Len(t, sensor.Ports, 1)
	assert.Equal(t, "b1", sensor.Ports[0].BlockID)

	require.Len(t, g.Connections, 1)
	assert.NotEmpty(t, g.Connections[0].ID, "connection ids are generated")
	assert.Equal(t, "p2", g.Connections[0].ToPort)

	grp := g.GroupByID("g1")
	require.NotNil(t, grp)
	assert.Equal(t, []string{"b1"}, grp.BlockIDs)

	require.Len(t, g.Requirements, 1)
	assert.NotEmpty(t, g.Requirements[0].ID)
	assert.Equal(t, "mass", g.Requirements[0].AttributeKey)
}

func TestGraphBuilderBlockLevelConnection(t *testing.T) {
	g := NewGraphBuilder("demo").
		Block("a", "A", "t").
		Block("b", "B", "t").
		ConnectBlocks("a", "b").
		Build()

	require.Len(t, g.Connections, 1)
	assert.Equal(t, "a", g.Connections[0].FromBlock)
	assert.Empty(t, g.Connections[0].FromPort)
}

func TestGraphBuilderIgnoresDanglingModifiers(t *testing.T) {
	// Modifier calls before any Block call must not panic.
	g := NewGraphBuilder("empty").
		At(1, 1).
		Attr("k", "v").
		Port("p", "P", schemas.DirectionInput, schemas.PortKindData).
		Build()

	assert.Empty(t, g.Blocks)
}
