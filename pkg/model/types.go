// File:         pkg/model/types.go
// Description:  Core entity definitions for the block-diagram document,
//               including cloning methods so callers never share mutable
//               state with a graph they did not create.
//
package model

import "github.com/veldtworks/blockgraph/api/schemas"

// Attributes is a generic map for free-form element attributes.
type Attributes map[string]interface{}

// Metadata is a generic map for document- and group-level metadata.
type Metadata map[string]interface{}

// Comparator selects how a requirement compares its aggregate against
// the target value.
type Comparator string

const (
	ComparatorAtMost  Comparator = "<="
	ComparatorAtLeast Comparator = ">="
	ComparatorEquals  Comparator = "="
)

// Link points at an external resource attached to a block. CAD-kind
// links drive host synchronization actions.
type Link struct {
	Kind   schemas.LinkKind `json:"kind"`
	Label  string           `json:"label,omitempty"`
	Target string           `json:"target"`
}

// Port is a typed attachment point on a block. The back-reference to
// the owning block is id-based; a port never outlives its block.
type Port struct {
	ID        string                 `json:"id"`
	BlockID   string                 `json:"block_id"`
	Name      string                 `json:"name"`
	Direction schemas.PortDirection  `json:"direction"`
	Kind      schemas.PortKind       `json:"kind"`
	Side      string                 `json:"side,omitempty"`
	Index     int                    `json:"index"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// Block is a component node in the diagram.
type Block struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Type           string              `json:"type"`
	X              float64             `json:"x"`
	Y              float64             `json:"y"`
	Status         schemas.BlockStatus `json:"status"`
	Ports          []Port              `json:"ports"`
	Attributes     Attributes          `json:"attributes,omitempty"`
	Links          []Link              `json:"links,omitempty"`
	ChildDiagramID string              `json:"child_diagram_id,omitempty"`
}

// Connection is a directed edge between two ports. The port ids are
// optional; block-level connections carry empty port ids.
type Connection struct {
	ID         string     `json:"id"`
	FromBlock  string     `json:"from_block"`
	FromPort   string     `json:"from_port,omitempty"`
	ToBlock    string     `json:"to_block"`
	ToPort     string     `json:"to_port,omitempty"`
	Kind       string     `json:"kind,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// Group is a named collection of blocks, optionally nested under a
// parent group.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BlockIDs    []string `json:"block_ids"`
	Metadata    Metadata `json:"metadata,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
}

// Requirement is a budget constraint over an attribute aggregated
// across all blocks.
type Requirement struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Target       float64    `json:"target"`
	Comparator   Comparator `json:"comparator"`
	Unit         string     `json:"unit,omitempty"`
	AttributeKey string     `json:"attribute_key"`
	Tolerance    float64    `json:"tolerance,omitempty"`
}

// Graph is the whole block-diagram document. Blocks, connections, and
// groups keep their insertion order; lookups are linear scans.
type Graph struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Schema       string        `json:"schema"`
	Blocks       []Block       `json:"blocks"`
	Connections  []Connection  `json:"connections"`
	Groups       []Group       `json:"groups"`
	Requirements []Requirement `json:"requirements,omitempty"`
	Metadata     Metadata      `json:"metadata,omitempty"`
}

// -- Deep Copy and Cloning Methods --

// DeepCopy creates a true copy of the Attributes map. Nested maps and
// slices are copied recursively so callers cannot mutate internal state.
func (a Attributes) DeepCopy() Attributes {
	if a == nil {
		return nil
	}
	return Attributes(copyValueMap(a))
}

// DeepCopy creates a true copy of the Metadata map.
func (m Metadata) DeepCopy() Metadata {
	if m == nil {
		return nil
	}
	return Metadata(copyValueMap(m))
}

func copyValueMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyValueMap(val)
	case Attributes:
		return copyValueMap(val)
	case Metadata:
		return copyValueMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return val
	}
}

// Clone creates a deep copy of a Port.
func (p *Port) Clone() *Port {
	if p == nil {
		return nil
	}
	out := *p
	if p.Params != nil {
		out.Params = copyValueMap(p.Params)
	}
	return &out
}

// Clone creates a deep copy of a Block, including its ports and links.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	out := *b
	out.Attributes = b.Attributes.DeepCopy()
	if b.Ports != nil {
		out.Ports = make([]Port, len(b.Ports))
		for i := range b.Ports {
			out.Ports[i] = *b.Ports[i].Clone()
		}
	}
	if b.Links != nil {
		out.Links = make([]Link, len(b.Links))
		copy(out.Links, b.Links)
	}
	return &out
}

// Clone creates a deep copy of a Connection.
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	out := *c
	out.Attributes = c.Attributes.DeepCopy()
	return &out
}

// Clone creates a deep copy of a Group.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	out := *g
	out.Metadata = g.Metadata.DeepCopy()
	if g.BlockIDs != nil {
		out.BlockIDs = make([]string, len(g.BlockIDs))
		copy(out.BlockIDs, g.BlockIDs)
	}
	return &out
}

// Clone creates a fully independent copy of the Graph.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		ID:     g.ID,
		Name:   g.Name,
		Schema: g.Schema,
	}
	out.Metadata = g.Metadata.DeepCopy()
	if g.Blocks != nil {
		out.Blocks = make([]Block, len(g.Blocks))
		for i := range g.Blocks {
			out.Blocks[i] = *g.Blocks[i].Clone()
		}
	}
	if g.Connections != nil {
		out.Connections = make([]Connection, len(g.Connections))
		for i := range g.Connections {
			out.Connections[i] = *g.Connections[i].Clone()
		}
	}
	if g.Groups != nil {
		out.Groups = make([]Group, len(g.Groups))
		for i := range g.Groups {
			out.Groups[i] = *g.Groups[i].Clone()
		}
	}
	if g.Requirements != nil {
		out.Requirements = make([]Requirement, len(g.Requirements))
		copy(out.Requirements, g.Requirements)
	}
	return out
}
