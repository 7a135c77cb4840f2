// File: pkg/delta/delta_test.go
package delta

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree parses a JSON literal into the generic value form the codec
// diffs over.
func tree(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(raw), &v))
	return v
}

func TestComputePatchEqualDocuments(t *testing.T) {
	doc := tree(t, `{"blocks": [{"id": "b1", "x": 10}], "name": "d"}`)
	patch := ComputePatch(doc, doc)
	assert.Empty(t, patch)
	assert.True(t, IsTrivial(patch))
}

func TestComputePatchScalarChange(t *testing.T) {
	oldDoc := tree(t, `{"blocks": [{"id": "b1", "x": 10}]}`)
	newDoc := tree(t, `{"blocks": [{"id": "b1", "x": 20}]}`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 1)
	assert.Equal(t, OpReplace, patch[0].Op)
	assert.Equal(t, "/blocks/0/x", patch[0].Path)
	assert.Equal(t, tree(t, `20`), patch[0].Value)
}

func TestComputePatchMapKeys(t *testing.T) {
	oldDoc := tree(t, `{"a": 1, "b": 2}`)
	newDoc := tree(t, `{"b": 2, "c": 3}`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 2)
	// Keys are walked in sorted order.
	assert.Equal(t, Operation{Op: OpRemove, Path: "/a"}, patch[0])
	assert.Equal(t, OpAdd, patch[1].Op)
	assert.Equal(t, "/c", patch[1].Path)
}

func TestComputePatchTypeMismatchReplacesWholeValue(t *testing.T) {
	oldDoc := tree(t, `{"v": [1, 2]}`)
	newDoc := tree(t, `{"v": {"k": 1}}`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 1)
	assert.Equal(t, OpReplace, patch[0].Op)
	assert.Equal(t, "/v", patch[0].Path)
}

func TestComputePatchListByIDIgnoresReordering(t *testing.T) {
	oldDoc := tree(t, `[{"id": "a", "v": 1}, {"id": "b", "v": 2}]`)
	newDoc := tree(t, `[{"id": "b", "v": 2}, {"id": "a", "v": 1}]`)

	assert.Empty(t, ComputePatch(oldDoc, newDoc))
}

func TestComputePatchListByID(t *testing.T) {
	oldDoc := tree(t, `[{"id": "a", "v": 1}, {"id": "b", "v": 2}, {"id": "c", "v": 3}]`)
	newDoc := tree(t, `[{"id": "c", "v": 30}, {"id": "d", "v": 4}]`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 4)

	// Modification of the surviving element first, at its old index.
	assert.Equal(t, OpReplace, patch[0].Op)
	assert.Equal(t, "/2/v", patch[0].Path)
	// Then removals at descending old indices.
	assert.Equal(t, Operation{Op: OpRemove, Path: "/1"}, patch[1])
	assert.Equal(t, Operation{Op: OpRemove, Path: "/0"}, patch[2])
	// Then the insertion at its new index.
	assert.Equal(t, OpAdd, patch[3].Op)
	assert.Equal(t, "/1", patch[3].Path)
}

func TestComputePatchListByIndexFallback(t *testing.T) {
	// Elements without ids diff positionally.
	oldDoc := tree(t, `[1, 2, 3]`)
	newDoc := tree(t, `[1, 9]`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 2)
	assert.Equal(t, Operation{Op: OpReplace, Path: "/1", Value: tree(t, `9`)}, patch[0])
	assert.Equal(t, Operation{Op: OpRemove, Path: "/2"}, patch[1])
}

func TestComputePatchDuplicateIDsFallBackToIndex(t *testing.T) {
	oldDoc := tree(t, `[{"id": "a"}, {"id": "a"}]`)
	newDoc := tree(t, `[{"id": "a"}]`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 1)
	assert.Equal(t, Operation{Op: OpRemove, Path: "/1"}, patch[0])
}

func TestComputePatchNestedGrowth(t *testing.T) {
	oldDoc := tree(t, `{"blocks": [{"id": "b1", "interfaces": []}]}`)
	newDoc := tree(t, `{"blocks": [{"id": "b1", "interfaces": [{"id": "p1", "name": "IN"}]}]}`)

	patch := ComputePatch(oldDoc, newDoc)
	require.Len(t, patch, 1)
	assert.Equal(t, OpAdd, patch[0].Op)
	assert.Equal(t, "/blocks/0/interfaces/0", patch[0].Path)
}
