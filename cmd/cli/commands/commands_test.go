package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/storage"
)

type testStore struct {
	configPath string
	dataDir    string
	backupDir  string
	backend    *storage.FileBackend
}

// newTestStore writes a config pointing the file driver at a temp directory
func newTestStore(t *testing.T) *testStore {
	t.Helper()
	root := t.TempDir()
	s := &testStore{
		configPath: filepath.Join(root, "config.yaml"),
		dataDir:    filepath.Join(root, "data"),
		backupDir:  filepath.Join(root, "backups"),
	}
	s.backend = storage.NewFileBackend(s.dataDir)

	cfg := fmt.Sprintf(`logger:
  level: error
storage:
  driver: file
  data_dir: %s
backup:
  dir: %s
  retain: 2
`, s.dataDir, s.backupDir)
	require.NoError(t, os.WriteFile(s.configPath, []byte(cfg), 0o644))
	return s
}

func (s *testStore) seed(t *testing.T, projects ...domain.Project) {
	t.Helper()
	c := storage.NewCollection[domain.Project](s.backend, storage.CollectionProjects, nil)
	require.NoError(t, c.WriteAll(context.Background(), projects))
}

func (s *testStore) projects(t *testing.T) []domain.Project {
	t.Helper()
	c := storage.NewCollection[domain.Project](s.backend, storage.CollectionProjects, nil)
	projects, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	return projects
}

// run executes the command tree and returns what it printed on stdout
func (s *testStore) run(args ...string) (string, error) {
	rootCmd := NewRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--config", s.configPath))
	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleProject(title string, updated time.Time) domain.Project {
	p := domain.NewProject(title, "", updated)
	p.Tasks = append(p.Tasks, domain.Task{
		ID:        title + "-task",
		Title:     "Audit servers",
		Priority:  domain.PriorityHigh,
		Labels:    []string{"infra"},
		ColumnID:  p.Columns[0].ID,
		SortOrder: 0,
		CreatedAt: updated,
		UpdatedAt: updated,
	})
	return p
}

func TestRootCmd_Flags(t *testing.T) {
	rootCmd := NewRootCmd()

	configFlag := rootCmd.PersistentFlags().Lookup(flagConfig)
	require.NotNil(t, configFlag)
	assert.Equal(t, defaultConfigPath, configFlag.DefValue)

	for _, path := range [][]string{
		{"projects", "list"},
		{"projects", "show"},
		{"storage", "check"},
		{"storage", "normalize"},
		{"backup"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestProjectsList(t *testing.T) {
	s := newTestStore(t)
	older := sampleProject("Older", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := sampleProject("Newer", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	s.seed(t, older, newer)

	out, err := s.run("projects", "list")
	require.NoError(t, err)

	var got projectListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Projects, 2)
	assert.Equal(t, "Newer", got.Projects[0].Title)
	assert.Equal(t, 4, got.Projects[0].Columns)
	assert.Equal(t, 1, got.Projects[0].Tasks)
}

func TestProjectsList_Empty(t *testing.T) {
	s := newTestStore(t)

	out, err := s.run("projects", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"projects": []}`, out)
}

func TestProjectsShow(t *testing.T) {
	s := newTestStore(t)
	p := sampleProject("Migration", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	s.seed(t, p)

	out, err := s.run("projects", "show", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "To Do (1 tasks):\n  - [HIGH] Audit servers [infra]")
	assert.Contains(t, out, "Done (0 tasks):")
}

func TestProjectsShow_Errors(t *testing.T) {
	s := newTestStore(t)

	_, err := s.run("projects", "show", "missing")
	assert.ErrorContains(t, err, "project missing not found")

	_, err = s.run("projects", "show")
	assert.Error(t, err)
}

func TestStorageCheck(t *testing.T) {
	s := newTestStore(t)
	clean := sampleProject("Clean", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	s.seed(t, clean)

	out, err := s.run("storage", "check")
	require.NoError(t, err)

	var got checkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Projects)
	assert.Empty(t, got.Violations)
}

func TestStorageCheck_Violations(t *testing.T) {
	s := newTestStore(t)
	broken := sampleProject("Broken", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	broken.Tasks[0].SortOrder = 3
	broken.Tasks = append(broken.Tasks, domain.Task{ID: "orphan", Title: "Lost", ColumnID: "gone"})
	s.seed(t, broken)

	out, err := s.run("storage", "check")
	assert.ErrorContains(t, err, "found 2 violations")

	var got checkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Violations, 2)
	assert.Equal(t, "task_order", string(got.Violations[0].Kind))
	assert.Equal(t, "orphan_task", string(got.Violations[1].Kind))
}

func TestStorageCheck_CorruptDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.backend.Save(context.Background(), storage.CollectionProjects, []byte(`[{"id":`)))

	_, err := s.run("storage", "check")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorrupt)
}

func TestStorageNormalize(t *testing.T) {
	s := newTestStore(t)
	broken := sampleProject("Broken", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	broken.Tasks[0].SortOrder = 5
	broken.Columns[3].SortOrder = 9
	clean := sampleProject("Clean", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	s.seed(t, broken, clean)

	t.Run("dry run leaves the store untouched", func(t *testing.T) {
		out, err := s.run("storage", "normalize", "--dry-run")
		require.NoError(t, err)

		var got normalizeOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, []string{broken.ID}, got.Normalized)
		assert.True(t, got.DryRun)
		assert.Equal(t, 5, s.projects(t)[0].Tasks[0].SortOrder)
	})

	t.Run("writes dense orders", func(t *testing.T) {
		out, err := s.run("storage", "normalize")
		require.NoError(t, err)

		var got normalizeOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 2, got.Projects)
		assert.Equal(t, []string{broken.ID}, got.Normalized)

		stored := s.projects(t)
		assert.Equal(t, 0, stored[0].Tasks[0].SortOrder)
		assert.Equal(t, 3, stored[0].Columns[3].SortOrder)

		_, err = s.run("storage", "check")
		assert.NoError(t, err)
	})
}

func TestBackup(t *testing.T) {
	s := newTestStore(t)
	s.seed(t, sampleProject("Migration", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	out, err := s.run("backup")
	require.NoError(t, err)

	var got []snapshotOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, storage.CollectionProjects, got[0].Collection)
	assert.Empty(t, got[0].Key)
	assert.FileExists(t, got[0].Path)
	assert.Equal(t, s.backupDir, filepath.Dir(got[0].Path))
}
