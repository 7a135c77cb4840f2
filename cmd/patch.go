// File: cmd/patch.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldtworks/blockgraph/pkg/delta"
)

// newPatchCmd creates the `patch` command.
func newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patch DOC PATCH",
		Short: "Applies a structural patch to a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readTree(args[0])
			if err != nil {
				return err
			}

			patchData, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}
			var patch []delta.Operation
			if err := json.Unmarshal(patchData, &patch); err != nil {
				return fmt.Errorf("failed to parse patch %s: %w", args[1], err)
			}

			result, err := delta.ApplyPatch(doc, patch)
			if err != nil {
				return fmt.Errorf("failed to apply patch: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
