// File:         pkg/validate/validate.go
// Description:  Integrity validation for block-diagram documents. Every
//               check reports violations as data; malformed-but-typed
//               input never raises. Severity policy stays with callers.
//
package validate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

// Validator proves referential and structural integrity of a graph.
type Validator struct {
	log *zap.Logger
}

// New creates a validator. A nil logger falls back to a nop logger.
func New(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{log: logger.Named("validate")}
}

// Validate runs every check and aggregates the violations. An empty
// slice means the graph is valid.
func (v *Validator) Validate(g *model.Graph) []schemas.ValidationError {
	if g == nil {
		return nil
	}

	var errs []schemas.ValidationError
	blockIDs := v.checkBlocks(g, &errs)
	v.checkPorts(g, &errs)
	v.checkConnections(g, blockIDs, &errs)
	v.checkGroups(g, blockIDs, &errs)
	v.checkCycles(g, &errs)

	v.log.Debug("Validation pass complete",
		zap.String("graph_id", g.ID),
		zap.Int("blocks", len(g.Blocks)),
		zap.Int("connections", len(g.Connections)),
		zap.Int("violations", len(errs)),
	)
	return errs
}

// checkBlocks detects duplicate block ids (first occurrence wins) and
// blank block names. Returns the set of known block ids for the
// downstream checks.
func (v *Validator) checkBlocks(g *model.Graph, errs *[]schemas.ValidationError) map[string]string {
	seen := make(map[string]string, len(g.Blocks))
	for i := range g.Blocks {
		b := &g.Blocks[i]
		if firstName, dup := seen[b.ID]; dup {
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrDuplicateBlockID,
				Message: fmt.Sprintf("duplicate block id %q used by %q and %q", b.ID, firstName, b.Name),
				BlockID: b.ID,
				Details: map[string]interface{}{"first_name": firstName, "duplicate_name": b.Name},
			})
			continue
		}
		seen[b.ID] = b.Name

		if strings.TrimSpace(b.Name) == "" {
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrEmptyBlockName,
				Message: fmt.Sprintf("block %q has an empty name", b.ID),
				BlockID: b.ID,
			})
		}
	}
	return seen
}

// checkPorts detects duplicate port ids across all blocks.
func (v *Validator) checkPorts(g *model.Graph, errs *[]schemas.ValidationError) {
	seen := make(map[string]string)
	for i := range g.Blocks {
		b := &g.Blocks[i]
		for j := range b.Ports {
			p := &b.Ports[j]
			if firstBlock, dup := seen[p.ID]; dup {
				*errs = append(*errs, schemas.ValidationError{
					Code:    schemas.ErrDuplicatePortID,
					Message: fmt.Sprintf("duplicate port id %q on blocks %q and %q", p.ID, firstBlock, b.ID),
					BlockID: b.ID,
					PortID:  p.ID,
					Details: map[string]interface{}{"first_block_id": firstBlock},
				})
				continue
			}
			seen[p.ID] = b.ID
		}
	}
}

// checkConnections validates endpoint resolution, self-connections,
// port references, duplicate 4-tuples, and direction compatibility.
// Connection endpoints may resolve to either a block or a group; a
// missing endpoint block skips the remaining checks for that
// connection.
func (v *Validator) checkConnections(g *model.Graph, blockIDs map[string]string, errs *[]schemas.ValidationError) {
	groupIDs := make(map[string]struct{}, len(g.Groups))
	for i := range g.Groups {
		groupIDs[g.Groups[i].ID] = struct{}{}
	}
	endpointExists := func(id string) bool {
		if _, ok := blockIDs[id]; ok {
			return true
		}
		_, ok := groupIDs[id]
		return ok
	}

	type tuple struct{ fb, fp, tb, tp string }
	seen := make(map[tuple]string, len(g.Connections))

	for i := range g.Connections {
		c := &g.Connections[i]

		resolved := true
		if !endpointExists(c.FromBlock) {
			*errs = append(*errs, schemas.ValidationError{
				Code:         schemas.ErrMissingSourceBlock,
				Message:      fmt.Sprintf("connection %q references missing source %q", c.ID, c.FromBlock),
				ConnectionID: c.ID,
				BlockID:      c.FromBlock,
			})
			resolved = false
		}
		if !endpointExists(c.ToBlock) {
			*errs = append(*errs, schemas.ValidationError{
				Code:         schemas.ErrMissingTargetBlock,
				Message:      fmt.Sprintf("connection %q references missing target %q", c.ID, c.ToBlock),
				ConnectionID: c.ID,
				BlockID:      c.ToBlock,
			})
			resolved = false
		}
		if !resolved {
			continue
		}

		if c.FromBlock == c.ToBlock {
			*errs = append(*errs, schemas.ValidationError{
				Code:         schemas.ErrSelfConnection,
				Message:      fmt.Sprintf("connection %q connects block %q to itself", c.ID, c.FromBlock),
				ConnectionID: c.ID,
				BlockID:      c.FromBlock,
			})
		}

		key := tuple{c.FromBlock, c.FromPort, c.ToBlock, c.ToPort}
		if firstID, dup := seen[key]; dup {
			*errs = append(*errs, schemas.ValidationError{
				Code:         schemas.ErrDuplicateConnection,
				Message:      fmt.Sprintf("connection %q duplicates %q", c.ID, firstID),
				ConnectionID: c.ID,
				Details:      map[string]interface{}{"first_connection_id": firstID},
			})
		} else {
			seen[key] = c.ID
		}

		srcPort := v.resolvePort(g, c.FromBlock, c.FromPort, c.ID, schemas.ErrMissingSourcePort, errs)
		dstPort := v.resolvePort(g, c.ToBlock, c.ToPort, c.ID, schemas.ErrMissingTargetPort, errs)

		if srcPort != nil && dstPort != nil {
			srcOK := srcPort.Direction == schemas.DirectionOutput || srcPort.Direction == schemas.DirectionBidirectional
			dstOK := dstPort.Direction == schemas.DirectionInput || dstPort.Direction == schemas.DirectionBidirectional
			if !srcOK || !dstOK {
				*errs = append(*errs, schemas.ValidationError{
					Code: schemas.ErrInvalidConnectionDirection,
					Message: fmt.Sprintf("connection %q has incompatible port directions (%s -> %s)",
						c.ID, srcPort.Direction, dstPort.Direction),
					ConnectionID: c.ID,
					Details: map[string]interface{}{
						"source_direction": string(srcPort.Direction),
						"target_direction": string(dstPort.Direction),
					},
				})
			}
		}
	}
}

// resolvePort looks up a connection endpoint's port on its block.
// Group endpoints and empty port ids carry no port to resolve.
func (v *Validator) resolvePort(g *model.Graph, blockID, portID, connID string, code schemas.ErrorCode, errs *[]schemas.ValidationError) *model.Port {
	if portID == "" {
		return nil
	}
	b := g.BlockByID(blockID)
	if b == nil {
		return nil // endpoint resolved to a group
	}
	p := b.PortByID(portID)
	if p == nil {
		*errs = append(*errs, schemas.ValidationError{
			Code:         code,
			Message:      fmt.Sprintf("connection %q references missing port %q on block %q", connID, portID, blockID),
			ConnectionID: connID,
			BlockID:      blockID,
			PortID:       portID,
		})
	}
	return p
}
