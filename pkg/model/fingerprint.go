// File: pkg/model/fingerprint.go
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// canonicalJSON sorts map keys so equal projections always hash equal.
var canonicalJSON = jsoniter.Config{SortMapKeys: true}.Froze()

type portProjection struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Direction string                 `json:"direction"`
	Kind      string                 `json:"kind"`
	Side      string                 `json:"side"`
	Index     int                    `json:"index"`
	Params    map[string]interface{} `json:"params"`
}

type blockProjection struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	X          float64                `json:"x"`
	Y          float64                `json:"y"`
	Status     string                 `json:"status"`
	Attributes map[string]interface{} `json:"attributes"`
	Ports      []portProjection       `json:"ports"`
	Links      []Link                 `json:"links"`
}

// Fingerprint hashes a canonicalized projection of a block's observable
// state. Version control uses it to detect modification without
// reference equality or mutation tracking.
func Fingerprint(b *Block) string {
	if b == nil {
		return ""
	}
	proj := blockProjection{
		Name:       b.Name,
		Type:       b.Type,
		X:          b.X,
		Y:          b.Y,
		Status:     string(b.Status),
		Attributes: b.Attributes,
		Ports:      make([]portProjection, 0, len(b.Ports)),
		Links:      b.Links,
	}
	for _, p := range b.Ports {
		proj.Ports = append(proj.Ports, portProjection{
			ID:        p.ID,
			Name:      p.Name,
			Direction: string(p.Direction),
			Kind:      string(p.Kind),
			Side:      p.Side,
			Index:     p.Index,
			Params:    p.Params,
		})
	}
	sort.Slice(proj.Ports, func(i, j int) bool { return proj.Ports[i].ID < proj.Ports[j].ID })

	data, err := canonicalJSON.Marshal(proj)
	if err != nil {
		// The projection contains only JSON-encodable values; an encode
		// failure would mean attribute values that cannot round-trip.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
