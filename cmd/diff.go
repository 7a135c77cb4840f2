// File: cmd/diff.go
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldtworks/blockgraph/pkg/delta"
)

// newDiffCmd creates the `diff` command.
func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Computes a structural patch transforming OLD into NEW",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldDoc, err := readTree(args[0])
			if err != nil {
				return err
			}
			newDoc, err := readTree(args[1])
			if err != nil {
				return err
			}

			patch := delta.ComputePatch(oldDoc, newDoc)
			if delta.IsTrivial(patch) {
				fmt.Fprintln(cmd.OutOrStdout(), "[]")
				return nil
			}

			out, err := json.MarshalIndent(patch, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode patch: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// readTree decodes a JSON file into a generic tree, preserving number
// precision.
func readTree(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
