// File: cmd/plan.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldtworks/blockgraph/internal/observability"
	"github.com/veldtworks/blockgraph/pkg/actionplan"
	"github.com/veldtworks/blockgraph/pkg/model"
)

// newPlanCmd creates the `plan` command.
func newPlanCmd() *cobra.Command {
	var noRefresh bool

	planCmd := &cobra.Command{
		Use:   "plan [OLD] NEW",
		Short: "Builds an ordered synchronization plan for a document",
		Long: `Builds an ordered synchronization plan. With two documents the plan
reconciles OLD into NEW; with one it materializes NEW from scratch.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prev *model.Graph
			currentPath := args[len(args)-1]
			if len(args) == 2 {
				var err error
				prev, err = readGraph(args[0])
				if err != nil {
					return err
				}
			}
			current, err := readGraph(currentPath)
			if err != nil {
				return err
			}

			opts := actionplan.Options{IncludeRefresh: activeConfig().Plan.IncludeRefresh}
			if noRefresh {
				opts.IncludeRefresh = false
			}

			builder := actionplan.New(observability.GetLogger())
			actions := builder.Build(current, prev, opts)

			out, err := json.MarshalIndent(actions, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	planCmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "omit the trailing refresh action")
	return planCmd
}

// readGraph loads and normalizes a diagram document.
func readGraph(path string) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	g, err := model.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}
