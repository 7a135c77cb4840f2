// File: cmd/snapshot.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/veldtworks/blockgraph/internal/observability"
	"github.com/veldtworks/blockgraph/internal/store"
	"github.com/veldtworks/blockgraph/pkg/versionctl"
)

// newSnapshotCmd creates the `snapshot` command group backed by the
// persistent store.
func newSnapshotCmd() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Captures, lists, restores, and compares document snapshots",
	}

	var author, description string
	captureCmd := &cobra.Command{
		Use:   "capture KEY FILE",
		Short: "Captures a snapshot of a document into the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			g, err := readGraph(args[1])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				history, err := loadHistory(ctx, st, key)
				if err != nil {
					return err
				}
				snap, err := history.Capture(g, author, description)
				if err != nil {
					return err
				}
				if err := st.SaveSnapshots(ctx, key, history.ToList()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "captured snapshot %s (%d held)\n", snap.ID, history.Len())
				return nil
			})
		},
	}
	captureCmd.Flags().StringVar(&author, "author", "", "snapshot author")
	captureCmd.Flags().StringVar(&description, "message", "", "snapshot description")

	listCmd := &cobra.Command{
		Use:   "list KEY",
		Short: "Lists the snapshot history for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				history, err := loadHistory(ctx, st, args[0])
				if err != nil {
					return err
				}
				for _, snap := range history.List() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
						snap.ID, snap.CreatedAt.Format("2006-01-02 15:04:05"), snap.Author, snap.Description)
				}
				return nil
			})
		},
	}

	var outFile string
	restoreCmd := &cobra.Command{
		Use:   "restore KEY SNAPSHOT_ID",
		Short: "Restores a snapshot into a document file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				history, err := loadHistory(ctx, st, args[0])
				if err != nil {
					return err
				}
				snap, err := history.Get(args[1])
				if err != nil {
					return err
				}
				if outFile == "" {
					fmt.Fprintln(cmd.OutOrStdout(), string(snap.Payload))
					return nil
				}
				return os.WriteFile(outFile, snap.Payload, 0o644)
			})
		},
	}
	restoreCmd.Flags().StringVarP(&outFile, "output", "o", "", "write the document to a file instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare KEY OLD_ID NEW_ID",
		Short: "Structurally compares two snapshots",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				history, err := loadHistory(ctx, st, args[0])
				if err != nil {
					return err
				}
				diff, err := history.Compare(args[1], args[2])
				if err != nil {
					return err
				}
				return printJSON(cmd, diff)
			})
		},
	}

	snapshotCmd.AddCommand(captureCmd, listCmd, restoreCmd, compareCmd)
	return snapshotCmd
}

// withStore connects to the configured database and runs fn against the
// persistent store.
func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	url := activeConfig().Database.URL
	if url == "" {
		return fmt.Errorf("no database configured: set database.url or BLOCKGRAPH_DATABASE_URL")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	st, err := store.New(ctx, pool, observability.GetLogger())
	if err != nil {
		return err
	}
	return fn(ctx, st)
}

// loadHistory rebuilds an in-memory snapshot history from the store.
func loadHistory(ctx context.Context, st *store.Store, key string) (*versionctl.SnapshotStore, error) {
	records, err := st.LoadSnapshots(ctx, key)
	if err != nil {
		return nil, err
	}
	history := versionctl.NewSnapshotStore(activeConfig().History.MaxSnapshots, observability.GetLogger())
	history.FromList(records)
	return history, nil
}
