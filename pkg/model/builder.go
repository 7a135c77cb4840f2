// File: pkg/model/builder.go
package model

import (
	"github.com/google/uuid"

	"github.com/veldtworks/blockgraph/api/schemas"
)

// GraphBuilder assembles a graph fluently. Intended for callers and
// tests that construct documents programmatically rather than by
// deserializing an interchange payload.
type GraphBuilder struct {
	graph     *Graph
	lastBlock *Block
}

// NewGraphBuilder starts a builder for a named graph.
func NewGraphBuilder(name string) *GraphBuilder {
	return &GraphBuilder{graph: NewGraph("", name)}
}

// Block adds a block and makes it the target for subsequent Port calls.
func (gb *GraphBuilder) Block(id, name, blockType string) *GraphBuilder {
	gb.lastBlock = gb.graph.AddBlock(NewBlock(id, name, blockType))
	return gb
}

// At positions the most recently added block.
func (gb *GraphBuilder) At(x, y float64) *GraphBuilder {
	if gb.lastBlock != nil {
		gb.lastBlock.X, gb.lastBlock.Y = x, y
	}
	return gb
}

// Status sets the lifecycle status of the most recently added block.
func (gb *GraphBuilder) Status(s schemas.BlockStatus) *GraphBuilder {
	if gb.lastBlock != nil {
		gb.lastBlock.Status = s
	}
	return gb
}

// Attr sets an attribute on the most recently added block.
func (gb *GraphBuilder) Attr(key string, value interface{}) *GraphBuilder {
	if gb.lastBlock != nil {
		if gb.lastBlock.Attributes == nil {
			gb.lastBlock.Attributes = Attributes{}
		}
		gb.lastBlock.Attributes[key] = value
	}
	return gb
}

// Link attaches an external link to the most recently added block.
func (gb *GraphBuilder) Link(kind schemas.LinkKind, label, target string) *GraphBuilder {
	if gb.lastBlock != nil {
		gb.lastBlock.Links = append(gb.lastBlock.Links, Link{Kind: kind, Label: label, Target: target})
	}
	return gb
}

// Port attaches a port to the most recently added block.
func (gb *GraphBuilder) Port(id, name string, direction schemas.PortDirection, kind schemas.PortKind) *GraphBuilder {
	if gb.lastBlock != nil {
		gb.lastBlock.AddPort(NewPort(id, name, direction, kind))
	}
	return gb
}

// Connect adds a port-level connection between two blocks.
func (gb *GraphBuilder) Connect(fromBlock, fromPort, toBlock, toPort string) *GraphBuilder {
	gb.graph.AddConnection(NewConnection("", fromBlock, fromPort, toBlock, toPort))
	return gb
}

// ConnectBlocks adds a block-level connection with empty port ids.
func (gb *GraphBuilder) ConnectBlocks(fromBlock, toBlock string) *GraphBuilder {
	gb.graph.AddConnection(NewConnection("", fromBlock, "", toBlock, ""))
	return gb
}

// Group adds a group containing the given block ids.
func (gb *GraphBuilder) Group(id, name string, blockIDs ...string) *GraphBuilder {
	grp := NewGroup(id, name)
	grp.BlockIDs = append(grp.BlockIDs, blockIDs...)
	gb.graph.AddGroup(grp)
	return gb
}

// Requirement adds a budget requirement over an aggregated attribute.
func (gb *GraphBuilder) Requirement(name, attributeKey string, comparator Comparator, target float64, unit string) *GraphBuilder {
	gb.graph.Requirements = append(gb.graph.Requirements, Requirement{
		ID:           uuid.NewString(),
		Name:         name,
		Target:       target,
		Comparator:   comparator,
		Unit:         unit,
		AttributeKey: attributeKey,
	})
	return gb
}

// Build returns the assembled graph.
func (gb *GraphBuilder) Build() *Graph {
	return gb.graph
}
