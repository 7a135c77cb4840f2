// File: pkg/validate/groups.go
package validate

import (
	"fmt"
	"strings"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/pkg/model"
)

// checkGroups validates group id uniqueness, member references, parent
// references, and group/block id collisions.
func (v *Validator) checkGroups(g *model.Graph, blockIDs map[string]string, errs *[]schemas.ValidationError) {
	seen := make(map[string]string, len(g.Groups))
	for i := range g.Groups {
		grp := &g.Groups[i]
		if firstName, dup := seen[grp.ID]; dup {
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrDuplicateGroupID,
				Message: fmt.Sprintf("duplicate group id %q used by %q and %q", grp.ID, firstName, grp.Name),
				GroupID: grp.ID,
				Details: map[string]interface{}{"first_name": firstName, "duplicate_name": grp.Name},
			})
			continue
		}
		seen[grp.ID] = grp.Name

		if blockName, collides := blockIDs[grp.ID]; collides {
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrGroupBlockIDCollision,
				Message: fmt.Sprintf("group id %q collides with block %q", grp.ID, blockName),
				GroupID: grp.ID,
				BlockID: grp.ID,
			})
		}

		for _, memberID := range grp.BlockIDs {
			if _, ok := blockIDs[memberID]; !ok {
				*errs = append(*errs, schemas.ValidationError{
					Code:    schemas.ErrInvalidGroupBlockReference,
					Message: fmt.Sprintf("group %q references missing block %q", grp.Name, memberID),
					GroupID: grp.ID,
					BlockID: memberID,
				})
			}
		}
	}

	v.checkGroupParents(g, errs)
}

// checkGroupParents walks each group's parent chain with visited and
// in-progress sets, reporting invalid, self, and circular references.
// A circular chain is reported with the full chain of group names.
func (v *Validator) checkGroupParents(g *model.Graph, errs *[]schemas.ValidationError) {
	verified := make(map[string]struct{}, len(g.Groups))

	for i := range g.Groups {
		grp := &g.Groups[i]
		if grp.ParentID == "" {
			continue
		}
		if _, done := verified[grp.ID]; done {
			continue
		}

		if grp.ParentID == grp.ID {
			*errs = append(*errs, schemas.ValidationError{
				Code:    schemas.ErrInvalidGroupParentReference,
				Message: fmt.Sprintf("group %q is its own parent", grp.Name),
				GroupID: grp.ID,
			})
			continue
		}

		inProgress := make(map[string]int)
		var chain []string
		current := grp
		for {
			inProgress[current.ID] = len(chain)
			chain = append(chain, current.Name)

			if current.ParentID == "" {
				break
			}
			parent := g.GroupByID(current.ParentID)
			if parent == nil {
				*errs = append(*errs, schemas.ValidationError{
					Code:    schemas.ErrInvalidGroupParentReference,
					Message: fmt.Sprintf("group %q references missing parent %q", current.Name, current.ParentID),
					GroupID: current.ID,
					Details: map[string]interface{}{"parent_id": current.ParentID},
				})
				break
			}
			if start, looping := inProgress[parent.ID]; looping {
				cycle := append(append([]string{}, chain[start:]...), parent.Name)
				*errs = append(*errs, schemas.ValidationError{
					Code:    schemas.ErrCircularGroupParent,
					Message: fmt.Sprintf("circular group parent chain: %s", strings.Join(cycle, " -> ")),
					GroupID: grp.ID,
					Details: map[string]interface{}{"chain": cycle},
				})
				break
			}
			if _, done := verified[parent.ID]; done {
				break
			}
			current = parent
		}

		for id := range inProgress {
			verified[id] = struct{}{}
		}
	}
}
