// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/delta"
)

// writeFile drops content into a fresh temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCommand executes a command with args and captures stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const validDoc = `{
  "schema": "blockgraph/v1",
  "id": "d1",
  "name": "Demo",
  "blocks": [
    {"id": "a", "name": "Sensor", "x": 0, "y": 0,
     "interfaces": [{"id": "a.out", "name": "OUT", "direction": "output"}]},
    {"id": "b", "name": "Controller", "x": 100, "y": 0,
     "interfaces": [{"id": "b.in", "name": "IN", "direction": "input"}]}
  ],
  "connections": [
    {"id": "c1", "from": {"blockId": "a", "interfaceId": "a.out"}, "to": {"blockId": "b", "interfaceId": "b.in"}}
  ],
  "groups": []
}`

const cyclicDoc = `{
  "id": "d2",
  "name": "Loop",
  "blocks": [
    {"id": "a", "name": "A", "interfaces": []},
    {"id": "b", "name": "B", "interfaces": []}
  ],
  "connections": [
    {"id": "c1", "fromBlock": "a", "toBlock": "b"},
    {"id": "c2", "fromBlock": "b", "toBlock": "a"}
  ],
  "groups": []
}`

func TestValidateCommand(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		path := writeFile(t, "doc.json", validDoc)
		out, err := runCommand(t, newValidateCmd(), path)
		require.NoError(t, err)
		assert.Contains(t, out, "valid")
	})

	t.Run("invalid document fails with summary", func(t *testing.T) {
		path := writeFile(t, "doc.json", cyclicDoc)
		out, err := runCommand(t, newValidateCmd(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 document(s) invalid")
		assert.Contains(t, out, "cycle_detected")
	})

	t.Run("mixed batch", func(t *testing.T) {
		good := writeFile(t, "good.json", validDoc)
		bad := writeFile(t, "bad.json", cyclicDoc)
		_, err := runCommand(t, newValidateCmd(), good, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 document(s) invalid")
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := runCommand(t, newValidateCmd(), filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestDiffCommand(t *testing.T) {
	t.Run("identical documents print an empty patch", func(t *testing.T) {
		path := writeFile(t, "doc.json", validDoc)
		out, err := runCommand(t, newDiffCmd(), path, path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", out)
	})

	t.Run("moved block yields a replace", func(t *testing.T) {
		oldPath := writeFile(t, "old.json", `{"blocks": [{"id": "b1", "x": 10}]}`)
		newPath := writeFile(t, "new.json", `{"blocks": [{"id": "b1", "x": 20}]}`)

		out, err := runCommand(t, newDiffCmd(), oldPath, newPath)
		require.NoError(t, err)

		var patch []delta.Operation
		require.NoError(t, json.Unmarshal([]byte(out), &patch))
		require.Len(t, patch, 1)
		assert.Equal(t, delta.OpReplace, patch[0].Op)
		assert.Equal(t, "/blocks/0/x", patch[0].Path)
	})

	t.Run("malformed input", func(t *testing.T) {
		good := writeFile(t, "good.json", validDoc)
		bad := writeFile(t, "bad.json", `{"blocks":`)
		_, err := runCommand(t, newDiffCmd(), good, bad)
		assert.Error(t, err)
	})
}

func TestPatchCommand(t *testing.T) {
	t.Run("applies a patch", func(t *testing.T) {
		docPath := writeFile(t, "doc.json", `{"blocks": [{"id": "b1", "x": 10}]}`)
		patchPath := writeFile(t, "patch.json",
			`[{"op": "replace", "path": "/blocks/0/x", "value": 20}]`)

		out, err := runCommand(t, newPatchCmd(), docPath, patchPath)
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		blocks := doc["blocks"].([]interface{})
		assert.Equal(t, 20.0, blocks[0].(map[string]interface{})["x"])
	})

	t.Run("bad path fails", func(t *testing.T) {
		docPath := writeFile(t, "doc.json", `{"a": 1}`)
		patchPath := writeFile(t, "patch.json",
			`[{"op": "replace", "path": "/missing/deep", "value": 1}]`)

		_, err := runCommand(t, newPatchCmd(), docPath, patchPath)
		assert.Error(t, err)
	})
}

func TestPlanCommand(t *testing.T) {
	decode := func(t *testing.T, out string) []schemas.Action {
		t.Helper()
		var actions []schemas.Action
		require.NoError(t, json.Unmarshal([]byte(out), &actions))
		return actions
	}

	t.Run("single document materializes in full", func(t *testing.T) {
		path := writeFile(t, "doc.json", validDoc)
		out, err := runCommand(t, newPlanCmd(), path)
		require.NoError(t, err)

		actions := decode(t, out)
		require.NotEmpty(t, actions)
		assert.Equal(t, schemas.ActionCreateBlock, actions[0].Type)
		assert.Equal(t, schemas.ActionRefreshView, actions[len(actions)-1].Type)
	})

	t.Run("two documents reconcile", func(t *testing.T) {
		oldPath := writeFile(t, "old.json", validDoc)
		newPath := writeFile(t, "new.json", cyclicDoc)

		out, err := runCommand(t, newPlanCmd(), oldPath, newPath)
		require.NoError(t, err)

		actions := decode(t, out)
		types := make([]schemas.ActionType, 0, len(actions))
		for _, a := range actions {
			types = append(types, a.Type)
		}
		assert.Contains(t, types, schemas.ActionDeletePort)
		assert.Contains(t, types, schemas.ActionCreateConnection)
	})

	t.Run("no-refresh flag", func(t *testing.T) {
		path := writeFile(t, "doc.json", validDoc)
		out, err := runCommand(t, newPlanCmd(), path, "--no-refresh")
		require.NoError(t, err)

		actions := decode(t, out)
		assert.Equal(t, schemas.ActionSaveDocument, actions[len(actions)-1].Type)
	})
}
