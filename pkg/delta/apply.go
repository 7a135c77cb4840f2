// File: pkg/delta/apply.go
package delta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadPath signals a patch path that cannot be resolved against the
// document. It is an operational failure, distinct from validation
// results.
var ErrBadPath = errors.New("patch path cannot be resolved")

// ApplyPatch applies the operations to a deep copy of doc and returns
// the result. The input document is never observably mutated, even
// under concurrent readers holding the old reference.
func ApplyPatch(doc interface{}, patch []Operation) (interface{}, error) {
	result := copyTree(doc)
	for i, op := range patch {
		var err error
		result, err = applyOne(result, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
		}
	}
	return result, nil
}

func applyOne(doc interface{}, op Operation) (interface{}, error) {
	if op.Path == "" || op.Path == "/" {
		// Whole-document replacement.
		switch op.Op {
		case OpReplace, OpAdd:
			return copyTree(op.Value), nil
		default:
			return nil, fmt.Errorf("%w: cannot remove document root", ErrBadPath)
		}
	}

	tokens := strings.Split(strings.TrimPrefix(op.Path, "/"), "/")
	parent, err := resolveParent(doc, tokens)
	if err != nil {
		return nil, err
	}
	last := tokens[len(tokens)-1]

	switch container := parent.(type) {
	case map[string]interface{}:
		switch op.Op {
		case OpAdd, OpReplace:
			container[last] = copyTree(op.Value)
		case OpRemove:
			delete(container, last)
		default:
			return nil, fmt.Errorf("%w: unsupported op %q", ErrBadPath, op.Op)
		}
		return doc, nil

	case []interface{}:
		idx, convErr := strconv.Atoi(last)
		if convErr != nil {
			return nil, fmt.Errorf("%w: list index %q is not numeric", ErrBadPath, last)
		}
		updated, err := applyToList(container, idx, op)
		if err != nil {
			return nil, err
		}
		// Lists re-slice on insert/remove, so the parent's reference to
		// this list has to be replaced in place.
		if len(tokens) == 1 {
			return updated, nil
		}
		if err := replaceChild(doc, tokens[:len(tokens)-1], updated); err != nil {
			return nil, err
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("%w: parent of %q is not a container", ErrBadPath, op.Path)
	}
}

func applyToList(list []interface{}, idx int, op Operation) ([]interface{}, error) {
	switch op.Op {
	case OpAdd:
		if idx < 0 || idx > len(list) {
			// Clamp to append semantics for past-the-end inserts.
			idx = len(list)
		}
		out := make([]interface{}, 0, len(list)+1)
		out = append(out, list[:idx]...)
		out = append(out, copyTree(op.Value))
		out = append(out, list[idx:]...)
		return out, nil
	case OpRemove:
		if idx < 0 || idx >= len(list) {
			return list, nil // out of range removals are a no-op
		}
		return append(list[:idx], list[idx+1:]...), nil
	case OpReplace:
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("%w: replace index %d out of range", ErrBadPath, idx)
		}
		list[idx] = copyTree(op.Value)
		return list, nil
	default:
		return nil, fmt.Errorf("%w: unsupported op %q", ErrBadPath, op.Op)
	}
}

// resolveParent walks all tokens but the last and returns the container
// holding the addressed element.
func resolveParent(doc interface{}, tokens []string) (interface{}, error) {
	current := doc
	for _, tok := range tokens[:len(tokens)-1] {
		next, err := childOf(current, tok)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// replaceChild re-installs a value at the container addressed by tokens.
func replaceChild(doc interface{}, tokens []string, value interface{}) error {
	parent, err := resolveParent(doc, tokens)
	if err != nil {
		return err
	}
	last := tokens[len(tokens)-1]
	switch container := parent.(type) {
	case map[string]interface{}:
		container[last] = value
		return nil
	case []interface{}:
		idx, convErr := strconv.Atoi(last)
		if convErr != nil || idx < 0 || idx >= len(container) {
			return fmt.Errorf("%w: list index %q out of range", ErrBadPath, last)
		}
		container[idx] = value
		return nil
	default:
		return fmt.Errorf("%w: segment %q is not a container", ErrBadPath, last)
	}
}

func childOf(v interface{}, token string) (interface{}, error) {
	switch container := v.(type) {
	case map[string]interface{}:
		child, ok := container[token]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrBadPath, token)
		}
		return child, nil
	case []interface{}:
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: list index %q is not numeric", ErrBadPath, token)
		}
		if idx < 0 || idx >= len(container) {
			return nil, fmt.Errorf("%w: list index %d out of range", ErrBadPath, idx)
		}
		return container[idx], nil
	default:
		return nil, fmt.Errorf("%w: segment %q addresses a scalar", ErrBadPath, token)
	}
}

// copyTree deep-copies a JSON-like value.
func copyTree(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			out[k] = copyTree(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = copyTree(child)
		}
		return out
	default:
		return val
	}
}
