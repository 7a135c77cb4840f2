// File: cmd/validate.go
package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veldtworks/blockgraph/api/schemas"
	"github.com/veldtworks/blockgraph/internal/observability"
	"github.com/veldtworks/blockgraph/pkg/model"
	"github.com/veldtworks/blockgraph/pkg/validate"
)

// newValidateCmd creates the `validate` command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validates one or more diagram documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			validator := validate.New(logger)

			type fileResult struct {
				file   string
				errors []schemas.ValidationError
			}

			var mu sync.Mutex
			results := make([]fileResult, 0, len(args))

			g, _ := errgroup.WithContext(cmd.Context())
			for _, file := range args {
				g.Go(func() error {
					data, err := os.ReadFile(file)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", file, err)
					}
					graph, err := model.Deserialize(data)
					if err != nil {
						return fmt.Errorf("failed to parse %s: %w", file, err)
					}
					errs := validator.Validate(graph)
					mu.Lock()
					results = append(results, fileResult{file: file, errors: errs})
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			invalid := 0
			for _, r := range results {
				if len(r.errors) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", r.file)
					continue
				}
				invalid++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d problem(s)\n", r.file, len(r.errors))
				for _, e := range r.errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
				}
			}

			if invalid > 0 {
				logger.Debug("Validation failed", zap.Int("invalid_documents", invalid))
				return fmt.Errorf("%d of %d document(s) invalid", invalid, len(results))
			}
			return nil
		},
	}
}
