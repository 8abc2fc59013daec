package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/job"
	"kanban-board-api/internal/storage"
)

// snapshotOutput represents one written snapshot
type snapshotOutput struct {
	Collection string `json:"collection"`
	Path       string `json:"path"`
	Key        string `json:"key,omitempty"`
}

func newBackupCmd() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot every collection now",
		Long: `Backup writes <backup.dir>/<collection>-<timestamp>.json for each collection,
uploads the snapshots when S3 is configured and prunes copies beyond the retain count.`,
		Args: cobra.NoArgs,
		RunE: runBackup,
	}
	backupCmd.Flags().Int(flagRetain, -1, "Snapshots to keep per collection (default from config, 0 keeps all)")
	return backupCmd
}

func runBackup(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	retain, err := cmd.Flags().GetInt(flagRetain)
	if err != nil {
		return fmt.Errorf("error getting retain flag: %w", err)
	}
	if retain < 0 {
		retain = e.cfg.Backup.Retain
	}

	var store client.BackupStore
	if e.cfg.S3.Enabled() {
		s3Client, err := client.NewS3Client(cmd.Context(), &e.cfg.S3, nil)
		if err != nil {
			return fmt.Errorf("error initializing S3 client: %w", err)
		}
		store = s3Client
	}

	backupJob := job.NewBackupJob(
		e.backend,
		[]string{storage.CollectionProjects, storage.CollectionCourses},
		e.cfg.Backup.Dir,
		retain,
		store,
		nil,
		e.logger,
	)

	snapshots, err := backupJob.Snapshot(cmd.Context())
	output := make([]snapshotOutput, 0, len(snapshots))
	for _, s := range snapshots {
		output = append(output, snapshotOutput{Collection: s.Collection, Path: s.Path, Key: s.Key})
	}
	if printErr := printJSON(cmd, output); printErr != nil {
		return printErr
	}
	if err != nil {
		e.logger.Error("Backup finished with errors", zap.Error(err))
		return fmt.Errorf("backup failed: %w", err)
	}
	return nil
}
