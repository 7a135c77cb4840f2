// File:         pkg/validate/cycles.go
// Description:  Cycle detection over the directed block connection
//               graph. Iterative three-color depth-first search keyed
//               by block id; only the first discovered cycle is
//               reported per validation pass.
//
package validate

import (
	"fmt"
	"strings"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

type dfsColor uint8

const (
	colorWhite dfsColor = iota // unvisited
	colorGray                  // on the current path
	colorBlack                 // fully explored
)

func (v *Validator) checkCycles(g *model.Graph, errs *[]schemas.ValidationError) {
	adjacency := make(map[string][]string, len(g.Blocks))
	names := make(map[string]string, len(g.Blocks))
	for i := range g.Blocks {
		b := &g.Blocks[i]
		names[b.ID] = b.Name
		if _, ok := adjacency[b.ID]; !ok {
			adjacency[b.ID] = nil
		}
	}
	for i := range g.Connections {
		c := &g.Connections[i]
		// Only edges between existing blocks participate; dangling and
		// group endpoints are reported by the referential checks.
		if _, ok := names[c.FromBlock]; !ok {
			continue
		}
		if _, ok := names[c.ToBlock]; !ok {
			continue
		}
		adjacency[c.FromBlock] = append(adjacency[c.FromBlock], c.ToBlock)
	}

	colors := make(map[string]dfsColor, len(g.Blocks))

	for i := range g.Blocks {
		rootID := g.Blocks[i].ID
		if colors[rootID] != colorWhite {
			continue
		}
		if cycle := findCycleFrom(rootID, adjacency, colors); cycle != nil {
			cycleNames := make([]string, len(cycle))
			for j, id := range cycle {
				cycleNames[j] = names[id]
			}
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrCycleDetected,
				Message: fmt.Sprintf("connection cycle detected: %s", strings.Join(cycleNames, " -> ")),
				BlockID: cycle[0],
				Details: map[string]interface{}{"cycle": cycleNames},
			})
			return // report one cycle, not all
		}
	}
}

// dfsFrame is one explicit stack entry: a node and the index of the
// next neighbor to visit.
type dfsFrame struct {
	id   string
	next int
}

// findCycleFrom runs an iterative DFS from root. On a back edge into a
// gray node it returns the slice of the current path starting at the
// repeated node, not the whole traversal prefix.
func findCycleFrom(root string, adjacency map[string][]string, colors map[string]dfsColor) []string {
	stack := []dfsFrame{{id: root}}
	colors[root] = colorGray
	path := []string{root}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		neighbors := adjacency[frame.id]

		if frame.next >= len(neighbors) {
			colors[frame.id] = colorBlack
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		neighbor := neighbors[frame.next]
		frame.next++

		switch colors[neighbor] {
		case colorGray:
			for i, id := range path {
				if id == neighbor {
					return append([]string{}, path[i:]...)
				}
			}
		case colorWhite:
			colors[neighbor] = colorGray
			stack = append(stack, dfsFrame{id: neighbor})
			path = append(path, neighbor)
		}
	}
	return nil
}
