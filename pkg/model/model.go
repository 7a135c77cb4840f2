// File:         pkg/model/model.go
// Description:  Constructors, lookups, and mutation operations for the
//               block-diagram document. Mutations maintain port
//               back-references and cascade removals; the model itself
//               never holds hidden global state.
//
package model

import (
	"github.com/google/uuid"

	"github.com/veldtworks/blockgraph/api/schemas"
)

// NewGraph creates an empty graph. A fresh id is generated when id is
// empty.
func NewGraph(id, name string) *Graph {
	if id == "" {
		id = uuid.NewString()
	}
	return &Graph{
		ID:           id,
		Name:         name,
		Schema:       SchemaVersion,
		Blocks:       []Block{},
		Connections:  []Connection{},
		Groups:       []Group{},
		Requirements: []Requirement{},
		Metadata:     Metadata{},
	}
}

// NewBlock creates a block with a generated id when unset. Status
// defaults to placeholder.
func NewBlock(id, name, blockType string) Block {
	if id == "" {
		id = uuid.NewString()
	}
	return Block{
		ID:         id,
		Name:       name,
		Type:       blockType,
		Status:     schemas.StatusPlaceholder,
		Ports:      []Port{},
		Attributes: Attributes{},
	}
}

// NewPort creates a port with a generated id when unset. The block
// back-reference is filled in by Block.AddPort or Graph.AddBlock.
func NewPort(id, name string, direction schemas.PortDirection, kind schemas.PortKind) Port {
	if id == "" {
		id = uuid.NewString()
	}
	if kind == "" {
		kind = schemas.PortKindGeneric
	}
	return Port{
		ID:        id,
		Name:      name,
		Direction: direction,
		Kind:      kind,
	}
}

// NewConnection creates a directed connection with a generated id when
// unset. Port ids may be empty for block-level connections.
func NewConnection(id, fromBlock, fromPort, toBlock, toPort string) Connection {
	if id == "" {
		id = uuid.NewString()
	}
	return Connection{
		ID:        id,
		FromBlock: fromBlock,
		FromPort:  fromPort,
		ToBlock:   toBlock,
		ToPort:    toPort,
	}
}

// NewGroup creates a group with a generated id when unset.
func NewGroup(id, name string) Group {
	if id == "" {
		id = uuid.NewString()
	}
	return Group{
		ID:       id,
		Name:     name,
		BlockIDs: []string{},
	}
}

// -- Lookups (linear scans, no secondary indices) --

// BlockByID returns the block with the given id, or nil.
func (g *Graph) BlockByID(id string) *Block {
	for i := range g.Blocks {
		if g.Blocks[i].ID == id {
			return &g.Blocks[i]
		}
	}
	return nil
}

// BlockByName returns the first block with the given name, or nil.
func (g *Graph) BlockByName(name string) *Block {
	for i := range g.Blocks {
		if g.Blocks[i].Name == name {
			return &g.Blocks[i]
		}
	}
	return nil
}

// ConnectionByID returns the connection with the given id, or nil.
func (g *Graph) ConnectionByID(id string) *Connection {
	for i := range g.Connections {
		if g.Connections[i].ID == id {
			return &g.Connections[i]
		}
	}
	return nil
}

// GroupByID returns the group with the given id, or nil.
func (g *Graph) GroupByID(id string) *Group {
	for i := range g.Groups {
		if g.Groups[i].ID == id {
			return &g.Groups[i]
		}
	}
	return nil
}

// GroupByName returns the first group with the given name, or nil.
func (g *Graph) GroupByName(name string) *Group {
	for i := range g.Groups {
		if g.Groups[i].Name == name {
			return &g.Groups[i]
		}
	}
	return nil
}

// PortByID searches every block for the given port id. Returns the port
// and its owning block, or nil, nil.
func (g *Graph) PortByID(id string) (*Port, *Block) {
	for i := range g.Blocks {
		for j := range g.Blocks[i].Ports {
			if g.Blocks[i].Ports[j].ID == id {
				return &g.Blocks[i].Ports[j], &g.Blocks[i]
			}
		}
	}
	return nil, nil
}

// -- Block mutations --

// AddPort attaches a port to the block, setting its back-reference.
func (b *Block) AddPort(p Port) {
	p.BlockID = b.ID
	b.Ports = append(b.Ports, p)
}

// RemovePort detaches the port with the given id. Returns true when a
// port was removed.
func (b *Block) RemovePort(portID string) bool {
	for i := range b.Ports {
		if b.Ports[i].ID == portID {
			b.Ports = append(b.Ports[:i], b.Ports[i+1:]...)
			return true
		}
	}
	return false
}

// PortByID returns the block's port with the given id, or nil.
func (b *Block) PortByID(id string) *Port {
	for i := range b.Ports {
		if b.Ports[i].ID == id {
			return &b.Ports[i]
		}
	}
	return nil
}

// CADLinks returns the block's links tagged as CAD links.
func (b *Block) CADLinks() []Link {
	var out []Link
	for _, l := range b.Links {
		if l.Kind == schemas.LinkKindCAD {
			out = append(out, l)
		}
	}
	return out
}

// -- Graph mutations --

// AddBlock appends a block, normalizing every owned port's
// back-reference to the block id.
func (g *Graph) AddBlock(b Block) *Block {
	for i := range b.Ports {
		b.Ports[i].BlockID = b.ID
	}
	g.Blocks = append(g.Blocks, b)
	return &g.Blocks[len(g.Blocks)-1]
}

// RemoveBlock removes the block with the given id. The removal
// cascades: every connection touching the block and every group
// membership referencing it are dropped too. Returns true when a block
// was removed.
func (g *Graph) RemoveBlock(id string) bool {
	idx := -1
	for i := range g.Blocks {
		if g.Blocks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	g.Blocks = append(g.Blocks[:idx], g.Blocks[idx+1:]...)

	kept := g.Connections[:0]
	for _, c := range g.Connections {
		if c.FromBlock != id && c.ToBlock != id {
			kept = append(kept, c)
		}
	}
	g.Connections = kept

	for i := range g.Groups {
		g.Groups[i].removeMember(id)
	}
	return true
}

// AddConnection appends a connection. Endpoint integrity is proven by
// the validation engine, not enforced here.
func (g *Graph) AddConnection(c Connection) *Connection {
	g.Connections = append(g.Connections, c)
	return &g.Connections[len(g.Connections)-1]
}

// RemoveConnection removes the connection with the given id. Returns
// true when a connection was removed.
func (g *Graph) RemoveConnection(id string) bool {
	for i := range g.Connections {
		if g.Connections[i].ID == id {
			g.Connections = append(g.Connections[:i], g.Connections[i+1:]...)
			return true
		}
	}
	return false
}

// AddGroup appends a group.
func (g *Graph) AddGroup(grp Group) *Group {
	g.Groups = append(g.Groups, grp)
	return &g.Groups[len(g.Groups)-1]
}

// RemoveGroup removes the group with the given id and clears any parent
// references pointing at it. Member blocks are untouched.
func (g *Graph) RemoveGroup(id string) bool {
	idx := -1
	for i := range g.Groups {
		if g.Groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	g.Groups = append(g.Groups[:idx], g.Groups[idx+1:]...)
	for i := range g.Groups {
		if g.Groups[i].ParentID == id {
			g.Groups[i].ParentID = ""
		}
	}
	return true
}

// AddBlockToGroup adds a block id to a group's member list. Duplicate
// memberships are ignored. Returns false when the group is unknown.
func (g *Graph) AddBlockToGroup(groupID, blockID string) bool {
	grp := g.GroupByID(groupID)
	if grp == nil {
		return false
	}
	for _, id := range grp.BlockIDs {
		if id == blockID {
			return true
		}
	}
	grp.BlockIDs = append(grp.BlockIDs, blockID)
	return true
}

// RemoveBlockFromGroup drops a block id from a group's member list.
// Returns false when the group is unknown.
func (g *Graph) RemoveBlockFromGroup(groupID, blockID string) bool {
	grp := g.GroupByID(groupID)
	if grp == nil {
		return false
	}
	grp.removeMember(blockID)
	return true
}

func (grp *Group) removeMember(blockID string) {
	for i, id := range grp.BlockIDs {
		if id == blockID {
			grp.BlockIDs = append(grp.BlockIDs[:i], grp.BlockIDs[i+1:]...)
			return
		}
	}
}
