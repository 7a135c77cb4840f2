// File: pkg/validate/cycles_test.go
package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

func TestCheckCyclesAcyclicGraph(t *testing.T) {
	// a -> b -> c, a -> c: a diamond-free DAG.
	g := model.NewGraphBuilder("dag").
		Block("a", "A", "t").
		Block("b", "B", "t").
		Block("c", "C", "t").
		ConnectBlocks("a", "b").
		ConnectBlocks("b", "c").
		ConnectBlocks("a", "c").
		Build()

	assert.Empty(t, New(nil).Validate(g))
}

func TestCheckCyclesTwoNodeCycle(t *testing.T) {
	g := model.NewGraphBuilder("loop").
		Block("a", "A", "t").
		Block("b", "B", "t").
		ConnectBlocks("a", "b").
		ConnectBlocks("b", "a").
		Build()

	errs := New(nil).Validate(g)
	require.Len(t, errs, 1, "exactly one cycle violation per pass")
	assert.Equal(t, schemas.ErrCycleDetected, errs[0].Code)

	cycle, ok := errs[0].Details["cycle"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"A", "B"}, cycle)
}

func TestCheckCyclesSelfLoop(t *testing.T) {
	g := model.NewGraphBuilder("self").
		Block("a", "A", "t").
		ConnectBlocks("a", "a").
		Build()

	errs := New(nil).Validate(g)
	codes := codesOf(errs)
	assert.Contains(t, codes, schemas.ErrSelfConnection)
	assert.Contains(t, codes, schemas.ErrCycleDetected)

	e := findCode(t, errs, schemas.ErrCycleDetected)
	assert.Equal(t, []string{"A"}, e.Details["cycle"])
}

func TestCheckCyclesReportsPathFromRepeatedNode(t *testing.T) {
	// entry -> a -> b -> c -> a: the cycle excludes the entry prefix.
	g := model.NewGraphBuilder("tail").
		Block("entry", "Entry", "t").
		Block("a", "A", "t").
		Block("b", "B", "t").
		Block("c", "C", "t").
		ConnectBlocks("entry", "a").
		ConnectBlocks("a", "b").
		ConnectBlocks("b", "c").
		ConnectBlocks("c", "a").
		Build()

	errs := New(nil).Validate(g)
	require.Len(t, errs, 1)

	cycle, ok := errs[0].Details["cycle"].([]string)
	require.True(t, ok)
	assert.NotContains(t, cycle, "Entry")
	assert.ElementsMatch(t, []string{"A", "B", "C"}, cycle)
}

func TestCheckCyclesOnlyFirstReported(t *testing.T) {
	// Two disjoint cycles; a single pass reports one violation.
	g := model.NewGraphBuilder("two").
		Block("a", "A", "t").
		Block("b", "B", "t").
		Block("c", "C", "t").
		Block("d", "D", "t").
		ConnectBlocks("a", "b").
		ConnectBlocks("b", "a").
		ConnectBlocks("c", "d").
		ConnectBlocks("d", "c").
		Build()

	errs := New(nil).Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, schemas.ErrCycleDetected, errs[0].Code)
}

func TestCheckCyclesIgnoresDanglingEdges(t *testing.T) {
	// The broken edge also breaks the would-be cycle; only the missing
	// endpoint is reported.
	g := model.NewGraphBuilder("dangling").
		Block("a", "A", "t").
		Block("b", "B", "t").
		ConnectBlocks("a", "b").
		ConnectBlocks("b", "ghost").
		Build()

	errs := New(nil).Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, schemas.ErrMissingTargetBlock, errs[0].Code)
}

func TestCheckCyclesSharedNodeAcrossBranches(t *testing.T) {
	// Revisiting a fully explored node through another branch is not a
	// cycle.
	g := model.NewGraphBuilder("diamond").
		Block("a", "A", "t").
		Block("b", "B", "t").
		Block("c", "C", "t").
		Block("d", "D", "t").
		ConnectBlocks("a", "b").
		ConnectBlocks("a", "c").
		ConnectBlocks("b", "d").
		ConnectBlocks("c", "d").
		Build()

	assert.Empty(t, New(nil).Validate(g))
}
