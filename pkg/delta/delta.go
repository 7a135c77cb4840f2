// File:         pkg/delta/delta.go
// Description:  Structural diff over generic JSON-like trees. The codec
//               is independent of the domain model; it operates on any
//               value built from maps, slices, and scalars.
//
package delta

import (
	"reflect"
	"sort"
	"strconv"
)

// Op identifies one patch operation kind. The wire format is a
// restricted subset of RFC 6902 JSON Patch (no move, copy, or test).
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
)

// Operation is one step of a structural patch.
type Operation struct {
	Op    Op          `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// IsTrivial reports whether applying the patch would change nothing.
// Callers are expected to skip all further I/O for trivial patches.
func IsTrivial(patch []Operation) bool {
	return len(patch) == 0
}

// ComputePatch produces an ordered operation list transforming old into
// new. Equal subtrees short-circuit to no operations.
func ComputePatch(oldDoc, newDoc interface{}) []Operation {
	return diffValue(oldDoc, newDoc, "")
}

func diffValue(oldVal, newVal interface{}, path string) []Operation {
	if reflect.DeepEqual(oldVal, newVal) {
		return nil
	}

	oldMap, oldIsMap := asMap(oldVal)
	newMap, newIsMap := asMap(newVal)
	if oldIsMap && newIsMap {
		return diffMap(oldMap, newMap, path)
	}

	oldSeq, oldIsSeq := asSlice(oldVal)
	newSeq, newIsSeq := asSlice(newVal)
	if oldIsSeq && newIsSeq {
		return diffSlice(oldSeq, newSeq, path)
	}

	// Scalar change or container type mismatch: a single replace.
	return []Operation{{Op: OpReplace, Path: path, Value: newVal}}
}

// diffMap walks the sorted union of keys so patch order is stable.
func diffMap(oldMap, newMap map[string]interface{}, path string) []Operation {
	keys := make([]string, 0, len(oldMap)+len(newMap))
	seen := make(map[string]struct{}, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys = append(keys, k)
		seen[k] = struct{}{}
	}
	for k := range newMap {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var ops []Operation
	for _, k := range keys {
		childPath := path + "/" + k
		oldChild, inOld := oldMap[k]
		newChild, inNew := newMap[k]
		switch {
		case !inOld:
			ops = append(ops, Operation{Op: OpAdd, Path: childPath, Value: newChild})
		case !inNew:
			ops = append(ops, Operation{Op: OpRemove, Path: childPath})
		default:
			ops = append(ops, diffValue(oldChild, newChild, childPath)...)
		}
	}
	return ops
}

// diffSlice chooses a strategy per list: by id when every element on
// both sides is a map carrying a unique "id" key, by index otherwise.
func diffSlice(oldSeq, newSeq []interface{}, path string) []Operation {
	oldIDs, oldOK := elementIDs(oldSeq)
	newIDs, newOK := elementIDs(newSeq)
	if oldOK && newOK {
		return diffSliceByID(oldSeq, newSeq, oldIDs, newIDs, path)
	}
	return diffSliceByIndex(oldSeq, newSeq, path)
}

// elementIDs extracts the "id" of every element. Returns false when any
// element is not a map, lacks a string id, or repeats one.
func elementIDs(seq []interface{}) ([]string, bool) {
	ids := make([]string, len(seq))
	seen := make(map[string]struct{}, len(seq))
	for i, el := range seq {
		m, ok := asMap(el)
		if !ok {
			return nil, false
		}
		id, ok := m["id"].(string)
		if !ok || id == "" {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			return nil, false
		}
		seen[id] = struct{}{}
		ids[i] = id
	}
	return ids, true
}

// diffSliceByID keys insertions, deletions, and modifications by id, so
// a pure reordering of identified elements produces no operations.
// Modifications come first, addressed at the element's old index while
// those positions are still valid. Removals follow at descending old
// indices so a sequential executor's index arithmetic stays valid, then
// insertions at their new indices.
func diffSliceByID(oldSeq, newSeq []interface{}, oldIDs, newIDs []string, path string) []Operation {
	oldIndex := make(map[string]int, len(oldIDs))
	for i, id := range oldIDs {
		oldIndex[id] = i
	}
	newIndex := make(map[string]int, len(newIDs))
	for i, id := range newIDs {
		newIndex[id] = i
	}

	var ops []Operation
	for i, id := range newIDs {
		if oldPos, existed := oldIndex[id]; existed {
			ops = append(ops, diffValue(oldSeq[oldPos], newSeq[i], path+"/"+strconv.Itoa(oldPos))...)
		}
	}
	for i := len(oldIDs) - 1; i >= 0; i-- {
		if _, kept := newIndex[oldIDs[i]]; !kept {
			ops = append(ops, Operation{Op: OpRemove, Path: path + "/" + strconv.Itoa(i)})
		}
	}
	for i, id := range newIDs {
		if _, existed := oldIndex[id]; !existed {
			ops = append(ops, Operation{Op: OpAdd, Path: path + "/" + strconv.Itoa(i), Value: newSeq[i]})
		}
	}
	return ops
}

// diffSliceByIndex compares positionally up to the longer length.
func diffSliceByIndex(oldSeq, newSeq []interface{}, path string) []Operation {
	var ops []Operation
	shared := len(oldSeq)
	if len(newSeq) < shared {
		shared = len(newSeq)
	}
	for i := 0; i < shared; i++ {
		ops = append(ops, diffValue(oldSeq[i], newSeq[i], path+"/"+strconv.Itoa(i))...)
	}
	for i := shared; i < len(newSeq); i++ {
		ops = append(ops, Operation{Op: OpAdd, Path: path + "/" + strconv.Itoa(i), Value: newSeq[i]})
	}
	// Trailing removals run high-to-low so earlier removals do not shift
	// the indices of later ones.
	for i := len(oldSeq) - 1; i >= shared; i-- {
		ops = append(ops, Operation{Op: OpRemove, Path: path + "/" + strconv.Itoa(i)})
	}
	return ops
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}
