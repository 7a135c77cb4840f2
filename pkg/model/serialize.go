// File:         pkg/model/serialize.go
// Description:  Interchange format support. The engine always emits the
//               legacy-compatible "interfaces" document shape; reading
//               accepts that shape plus the modern ports/connections
//               shape and two flattened historical connection spellings,
//               all normalized to the one in-memory representation.
//
package model

import (
	"fmt"

	json "github.com/json-iterator/go"

	"github.com/veldtworks/blockgraph/api/schemas"
)

// SchemaVersion tags documents emitted by this engine.
const SchemaVersion = "blockgraph/v1"

// -- Wire shapes --

type wirePortGeometry struct {
	Side  string `json:"side,omitempty"`
	Index int    `json:"index"`
}

type wireInterface struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Kind      string                 `json:"kind,omitempty"`
	Direction string                 `json:"direction"`
	Port      *wirePortGeometry      `json:"port,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`

	// Modern flat spelling, read-only.
	Side  string `json:"side,omitempty"`
	Index *int   `json:"index,omitempty"`
}

type wireLink struct {
	Kind   string `json:"kind"`
	Label  string `json:"label,omitempty"`
	Target string `json:"target"`
}

type wireBlock struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Type           string                 `json:"type,omitempty"`
	X              float64                `json:"x"`
	Y              float64                `json:"y"`
	Status         string                 `json:"status,omitempty"`
	Attributes     map[string]interface{} `json:"attributes,omitempty"`
	Links          []wireLink             `json:"links,omitempty"`
	Interfaces     []wireInterface        `json:"interfaces"`
	Ports          []wireInterface        `json:"ports,omitempty"`
	ChildDiagramID string                 `json:"childDiagramId,omitempty"`
}

type wireEndpoint struct {
	BlockID     string `json:"blockId"`
	InterfaceID string `json:"interfaceId,omitempty"`
}

type wireConnection struct {
	ID         string                 `json:"id"`
	From       *wireEndpoint          `json:"from,omitempty"`
	To         *wireEndpoint          `json:"to,omitempty"`
	Kind       string                 `json:"kind,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`

	// Flattened historical spellings, read-only.
	FromBlock string `json:"fromBlock,omitempty"`
	FromPort  string `json:"fromPort,omitempty"`
	ToBlock   string `json:"toBlock,omitempty"`
	ToPort    string `json:"toPort,omitempty"`

	FromBlockID string `json:"from_block_id,omitempty"`
	FromPortID  string `json:"from_port_id,omitempty"`
	ToBlockID   string `json:"to_block_id,omitempty"`
	ToPortID    string `json:"to_port_id,omitempty"`
}

type wireGroup struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	BlockIDs    []string               `json:"blockIds"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	ParentID    string                 `json:"parentId,omitempty"`
}

type wireRequirement struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Target       float64 `json:"target"`
	Comparator   string  `json:"comparator"`
	Unit         string  `json:"unit,omitempty"`
	AttributeKey string  `json:"attributeKey"`
	Tolerance    float64 `json:"tolerance,omitempty"`
}

type wireGraph struct {
	Schema       string                 `json:"schema"`
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Blocks       []wireBlock            `json:"blocks"`
	Connections  []wireConnection       `json:"connections"`
	Groups       []wireGroup            `json:"groups"`
	Requirements []wireRequirement      `json:"requirements,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// -- Serialization --

// Serialize encodes the graph into the legacy-compatible interchange
// shape. The output always uses the nested "interfaces" and endpoint
// object spellings for backward compatibility.
func Serialize(g *Graph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot serialize a nil graph")
	}
	doc := wireGraph{
		Schema:       SchemaVersion,
		ID:           g.ID,
		Name:         g.Name,
		Blocks:       make([]wireBlock, 0, len(g.Blocks)),
		Connections:  make([]wireConnection, 0, len(g.Connections)),
		Groups:       make([]wireGroup, 0, len(g.Groups)),
		Requirements: make([]wireRequirement, 0, len(g.Requirements)),
		Metadata:     g.Metadata,
	}

	for i := range g.Blocks {
		b := &g.Blocks[i]
		wb := wireBlock{
			ID:             b.ID,
			Name:           b.Name,
			Type:           b.Type,
			X:              b.X,
			Y:              b.Y,
			Status:         string(b.Status),
			Attributes:     b.Attributes,
			Interfaces:     make([]wireInterface, 0, len(b.Ports)),
			ChildDiagramID: b.ChildDiagramID,
		}
		for _, l := range b.Links {
			wb.Links = append(wb.Links, wireLink{Kind: string(l.Kind), Label: l.Label, Target: l.Target})
		}
		for _, p := range b.Ports {
			wb.Interfaces = append(wb.Interfaces, wireInterface{
				ID:        p.ID,
				Name:      p.Name,
				Kind:      string(p.Kind),
				Direction: string(p.Direction),
				Port:      &wirePortGeometry{Side: p.Side, Index: p.Index},
				Params:    p.Params,
			})
		}
		doc.Blocks = append(doc.Blocks, wb)
	}

	for i := range g.Connections {
		c := &g.Connections[i]
		doc.Connections = append(doc.Connections, wireConnection{
			ID:         c.ID,
			From:       &wireEndpoint{BlockID: c.FromBlock, InterfaceID: c.FromPort},
			To:         &wireEndpoint{BlockID: c.ToBlock, InterfaceID: c.ToPort},
			Kind:       c.Kind,
			Attributes: c.Attributes,
		})
	}

	for i := range g.Groups {
		grp := &g.Groups[i]
		blockIDs := grp.BlockIDs
		if blockIDs == nil {
			blockIDs = []string{}
		}
		doc.Groups = append(doc.Groups, wireGroup{
			ID:          grp.ID,
			Name:        grp.Name,
			Description: grp.Description,
			BlockIDs:    blockIDs,
			Metadata:    grp.Metadata,
			ParentID:    grp.ParentID,
		})
	}

	for _, r := range g.Requirements {
		doc.Requirements = append(doc.Requirements, wireRequirement{
			ID:           r.ID,
			Name:         r.Name,
			Target:       r.Target,
			Comparator:   string(r.Comparator),
			Unit:         r.Unit,
			AttributeKey: r.AttributeKey,
			Tolerance:    r.Tolerance,
		})
	}

	return json.Marshal(doc)
}

// Deserialize decodes any of the supported historical document shapes
// and normalizes to the in-memory model.
func Deserialize(data []byte) (*Graph, error) {
	var doc wireGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	g := &Graph{
		ID:           doc.ID,
		Name:         doc.Name,
		Schema:       doc.Schema,
		Blocks:       make([]Block, 0, len(doc.Blocks)),
		Connections:  make([]Connection, 0, len(doc.Connections)),
		Groups:       make([]Group, 0, len(doc.Groups)),
		Requirements: make([]Requirement, 0, len(doc.Requirements)),
		Metadata:     doc.Metadata,
	}
	if g.Schema == "" {
		g.Schema = SchemaVersion
	}

	for _, wb := range doc.Blocks {
		b := Block{
			ID:             wb.ID,
			Name:           wb.Name,
			Type:           wb.Type,
			X:              wb.X,
			Y:              wb.Y,
			Status:         normalizeStatus(wb.Status),
			Attributes:     wb.Attributes,
			ChildDiagramID: wb.ChildDiagramID,
			Ports:          []Port{},
		}
		for _, wl := range wb.Links {
			b.Links = append(b.Links, Link{Kind: schemas.LinkKind(wl.Kind), Label: wl.Label, Target: wl.Target})
		}
		// Legacy documents carry "interfaces"; modern ones carry "ports".
		ports := wb.Interfaces
		if len(ports) == 0 && len(wb.Ports) > 0 {
			ports = wb.Ports
		}
		for _, wi := range ports {
			b.Ports = append(b.Ports, normalizePort(wi, b.ID))
		}
		g.Blocks = append(g.Blocks, b)
	}

	for _, wc := range doc.Connections {
		g.Connections = append(g.Connections, normalizeConnection(wc))
	}

	for _, wg := range doc.Groups {
		blockIDs := wg.BlockIDs
		if blockIDs == nil {
			blockIDs = []string{}
		}
		g.Groups = append(g.Groups, Group{
			ID:          wg.ID,
			Name:        wg.Name,
			Description: wg.Description,
			BlockIDs:    blockIDs,
			Metadata:    wg.Metadata,
			ParentID:    wg.ParentID,
		})
	}

	for _, wr := range doc.Requirements {
		g.Requirements = append(g.Requirements, Requirement{
			ID:           wr.ID,
			Name:         wr.Name,
			Target:       wr.Target,
			Comparator:   Comparator(wr.Comparator),
			Unit:         wr.Unit,
			AttributeKey: wr.AttributeKey,
			Tolerance:    wr.Tolerance,
		})
	}

	return g, nil
}

func normalizePort(wi wireInterface, blockID string) Port {
	p := Port{
		ID:        wi.ID,
		BlockID:   blockID,
		Name:      wi.Name,
		Direction: normalizeDirection(wi.Direction),
		Kind:      normalizeKind(wi.Kind),
		Params:    wi.Params,
	}
	if wi.Port != nil {
		p.Side = wi.Port.Side
		p.Index = wi.Port.Index
	} else {
		p.Side = wi.Side
		if wi.Index != nil {
			p.Index = *wi.Index
		}
	}
	return p
}

func normalizeConnection(wc wireConnection) Connection {
	c := Connection{
		ID:         wc.ID,
		Kind:       wc.Kind,
		Attributes: wc.Attributes,
	}
	switch {
	case wc.From != nil || wc.To != nil:
		if wc.From != nil {
			c.FromBlock, c.FromPort = wc.From.BlockID, wc.From.InterfaceID
		}
		if wc.To != nil {
			c.ToBlock, c.ToPort = wc.To.BlockID, wc.To.InterfaceID
		}
	case wc.FromBlock != "" || wc.ToBlock != "":
		c.FromBlock, c.FromPort = wc.FromBlock, wc.FromPort
		c.ToBlock, c.ToPort = wc.ToBlock, wc.ToPort
	default:
		c.FromBlock, c.FromPort = wc.FromBlockID, wc.FromPortID
		c.ToBlock, c.ToPort = wc.ToBlockID, wc.ToPortID
	}
	return c
}

func normalizeStatus(s string) schemas.BlockStatus {
	st := schemas.BlockStatus(s)
	if !schemas.ValidStatus(st) {
		return schemas.StatusPlaceholder
	}
	return st
}

func normalizeDirection(d string) schemas.PortDirection {
	dir := schemas.PortDirection(d)
	if !schemas.ValidDirection(dir) {
		return schemas.DirectionBidirectional
	}
	return dir
}

func normalizeKind(k string) schemas.PortKind {
	switch kind := schemas.PortKind(k); kind {
	case schemas.PortKindPower, schemas.PortKindData, schemas.PortKindSignal,
		schemas.PortKindControl, schemas.PortKindMechanical, schemas.PortKindThermal:
		return kind
	default:
		return schemas.PortKindGeneric
	}
}
