package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/webwalker/internal/infrastructure/sqlite"
	"github.com/zjrosen/webwalker/internal/paths"
	"github.com/zjrosen/webwalker/internal/presentation"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

var (
	snapshotJSON  bool
	snapshotRoot  string
	snapshotLimit int
	restoreOutput string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect trees recorded on every save",
	Long: `Every save also records the tree in a local snapshot database
(snapshots.path, default <data_dir>/snapshots.db).

Examples:
  # List the newest snapshots
  webwalker snapshot list

  # Only snapshots of one root, as JSON
  webwalker snapshot list --root example.com --json

  # Print a snapshot by ID prefix
  webwalker snapshot show 3f2a9c1e

  # Write a snapshot back to a file and continue from it
  webwalker snapshot restore 3f2a9c1e -o restored.txt
  webwalker -I restored.txt`,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSnapshots(cmd, func(repo domain.SnapshotRepository) error {
			limit := cfg.Snapshots.ListLimit
			if cmd.Flags().Changed("limit") {
				limit = snapshotLimit
			}
			snaps, err := repo.List(domain.ListFilter{Root: snapshotRoot, Limit: limit})
			if err != nil {
				return fmt.Errorf("listing snapshots: %w", err)
			}
			return presentation.NewFormatter(cmd.OutOrStdout(), snapshotJSON).
				FormatSnapshots(presentation.FromDomainSnapshots(snaps))
		})
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a snapshot's tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(cmd, func(repo domain.SnapshotRepository) error {
			snap, err := repo.FindByID(args[0])
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout(), snapshotJSON).
				FormatSnapshot(presentation.FromDomainSnapshot(snap, true))
		})
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Write a snapshot's tree to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(cmd, func(repo domain.SnapshotRepository) error {
			snap, err := repo.FindByID(args[0])
			if err != nil {
				return err
			}
			path := paths.ResolveDataFile(cfg.DataDir, restoreOutput)
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(snap.Body()), 0o644); err != nil { //nolint:gosec // G306: reports are meant to be shared
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %s to %s\n", snap.ShortID(), path)
			return nil
		})
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(cmd, func(repo domain.SnapshotRepository) error {
			snap, err := repo.FindByID(args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(snap.ID()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", snap.ShortID())
			return nil
		})
	},
}

func init() {
	snapshotCmd.PersistentFlags().BoolVar(&snapshotJSON, "json", false, "print JSON")
	snapshotListCmd.Flags().StringVar(&snapshotRoot, "root", "", "only snapshots of this root directory")
	snapshotListCmd.Flags().IntVarP(&snapshotLimit, "limit", "n", 0, "maximum number of snapshots (0 for all)")
	snapshotRestoreCmd.Flags().StringVarP(&restoreOutput, "output-file", "o", "", "file to write the tree to")
	_ = snapshotRestoreCmd.MarkFlagRequired("output-file")

	snapshotCmd.AddCommand(snapshotListCmd, snapshotShowCmd, snapshotRestoreCmd, snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// withSnapshots opens the snapshot database for the duration of fn.
func withSnapshots(cmd *cobra.Command, fn func(domain.SnapshotRepository) error) error {
	cleanup := setupLogging(cmd)
	defer cleanup()

	path := cfg.SnapshotPath()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no snapshot database at %s: %w", path, err)
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(db.SnapshotRepository())
}
