// File: pkg/model/requirements.go
package model

import "encoding/json"

// RequirementResult reports one requirement evaluation.
type RequirementResult struct {
	RequirementID string  `json:"requirement_id"`
	Name          string  `json:"name"`
	Actual        float64 `json:"actual"`
	Target        float64 `json:"target"`
	Unit          string  `json:"unit,omitempty"`
	Satisfied     bool    `json:"satisfied"`
}

// EvaluateRequirements sums each requirement's linked attribute across
// all blocks and compares the aggregate against the target. Attribute
// values that are not numeric are skipped.
func (g *Graph) EvaluateRequirements() []RequirementResult {
	results := make([]RequirementResult, 0, len(g.Requirements))
	for _, r := range g.Requirements {
		var total float64
		for i := range g.Blocks {
			if v, ok := numericAttribute(g.Blocks[i].Attributes, r.AttributeKey); ok {
				total += v
			}
		}
		results = append(results, RequirementResult{
			RequirementID: r.ID,
			Name:          r.Name,
			Actual:        total,
			Target:        r.Target,
			Unit:          r.Unit,
			Satisfied:     r.satisfied(total),
		})
	}
	return results
}

func (r Requirement) satisfied(actual float64) bool {
	switch r.Comparator {
	case ComparatorAtMost:
		return actual <= r.Target+r.Tolerance
	case ComparatorAtLeast:
		return actual >= r.Target-r.Tolerance
	case ComparatorEquals:
		diff := actual - r.Target
		if diff < 0 {
			diff = -diff
		}
		return diff <= r.Tolerance
	default:
		return false
	}
}

func numericAttribute(attrs Attributes, key string) (float64, bool) {
	v, ok := attrs[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
