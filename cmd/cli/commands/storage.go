package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/ordering"
	"kanban-board-api/internal/storage"
)

// checkOutput lists every ordering violation found in the store
type checkOutput struct {
	Projects   int                  `json:"projects"`
	Violations []ordering.Violation `json:"violations"`
}

// normalizeOutput lists the projects whose ordering was repaired
type normalizeOutput struct {
	Projects   int      `json:"projects"`
	Normalized []string `json:"normalized"`
	DryRun     bool     `json:"dryRun,omitempty"`
}

func newStorageCmd() *cobra.Command {
	storageCmd := &cobra.Command{
		Use:   "storage",
		Short: "Check and repair the stored board documents",
	}

	storageCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report ordering gaps and tasks that reference a missing column",
		Long: `Check verifies that every column's tasks are numbered 0..n-1, that the column
list is numbered 0..n-1 and that every task points at an existing column.
It exits non-zero when a violation is found.`,
		Args: cobra.NoArgs,
		RunE: runStorageCheck,
	})

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Renumber columns and tasks so every order is dense",
		Args:  cobra.NoArgs,
		RunE:  runStorageNormalize,
	}
	normalizeCmd.Flags().Bool(flagDryRun, false, "Report what would change without writing")
	storageCmd.AddCommand(normalizeCmd)

	return storageCmd
}

func projectCollection(e *env) *storage.Collection[domain.Project] {
	return storage.NewCollection[domain.Project](e.backend, storage.CollectionProjects, nil)
}

func runStorageCheck(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	projects, err := projectCollection(e).ReadAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("error reading projects: %w", err)
	}

	output := checkOutput{Projects: len(projects), Violations: []ordering.Violation{}}
	for i := range projects {
		output.Violations = append(output.Violations, ordering.Check(&projects[i])...)
	}
	if err := printJSON(cmd, output); err != nil {
		return err
	}

	if len(output.Violations) > 0 {
		return fmt.Errorf("found %d violations", len(output.Violations))
	}
	return nil
}

func runStorageNormalize(cmd *cobra.Command, _ []string) error {
	dryRun, err := cmd.Flags().GetBool(flagDryRun)
	if err != nil {
		return fmt.Errorf("error getting dry-run flag: %w", err)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	collection := projectCollection(e)
	projects, err := collection.ReadAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("error reading projects: %w", err)
	}

	output := normalizeOutput{Projects: len(projects), Normalized: []string{}, DryRun: dryRun}
	for i := range projects {
		if !needsNormalize(&projects[i]) {
			continue
		}
		ordering.Normalize(&projects[i])
		output.Normalized = append(output.Normalized, projects[i].ID)
	}

	if len(output.Normalized) > 0 && !dryRun {
		if err := collection.WriteAll(cmd.Context(), projects); err != nil {
			return fmt.Errorf("error writing projects: %w", err)
		}
		e.logger.Info("Normalized projects", zap.Int("count", len(output.Normalized)))
	}
	return printJSON(cmd, output)
}

// needsNormalize reports ordering gaps; orphan tasks are not repaired by Normalize
func needsNormalize(p *domain.Project) bool {
	for _, v := range ordering.Check(p) {
		if v.Kind != ordering.ViolationOrphanTask {
			return true
		}
	}
	return false
}
