package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/storage"
)

// projectOutput represents the filtered output for a project
type projectOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Columns   int       `json:"columns"`
	Tasks     int       `json:"tasks"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// projectListOutput represents the filtered output for a list of projects
type projectListOutput struct {
	Projects []projectOutput `json:"projects"`
}

func newProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect projects",
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects, most recently modified first",
		Args:  cobra.NoArgs,
		RunE:  runListProjects,
	})
	projectsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print the board summary of a project",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowProject,
	})

	return projectsCmd
}

func projectRepository(e *env) repository.ProjectRepository {
	return repository.NewProjectRepository(storage.NewCollection[domain.Project](e.backend, storage.CollectionProjects, nil))
}

func runListProjects(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	projects, err := projectRepository(e).ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("error listing projects: %w", err)
	}

	output := projectListOutput{Projects: make([]projectOutput, 0, len(projects))}
	for _, p := range projects {
		output.Projects = append(output.Projects, projectOutput{
			ID:        p.ID,
			Title:     p.Title,
			Columns:   len(p.Columns),
			Tasks:     len(p.Tasks),
			UpdatedAt: p.UpdatedAt,
		})
	}
	return printJSON(cmd, output)
}

func runShowProject(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	project, err := projectRepository(e).GetProject(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("error getting project: %w", err)
	}
	if project == nil {
		return fmt.Errorf("project %s not found", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), service.SummarizeBoard(project).Text)
	return nil
}
