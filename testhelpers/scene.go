package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

// Scene represents a test scene: a temporary Git repository with a
// workflow directory.
type Scene struct {
	Dir         string
	WorkflowDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene in a temporary directory. It never
// changes the working directory, so it is safe for parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	if _, err := gogit.PlainInit(dir, false); err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}

	scene := &Scene{
		Dir:         dir,
		WorkflowDir: filepath.Join(dir, ".github", "workflows"),
	}
	if err := os.MkdirAll(scene.WorkflowDir, 0o755); err != nil {
		t.Fatalf("Failed to create workflow dir: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// WorkflowPath returns the path of a workflow file
func (s *Scene) WorkflowPath(name string) string {
	return filepath.Join(s.WorkflowDir, name)
}

// WriteWorkflow writes a workflow file
func (s *Scene) WriteWorkflow(name, content string) error {
	return os.WriteFile(s.WorkflowPath(name), []byte(content), 0o644)
}

// ReadWorkflow reads a workflow file
func (s *Scene) ReadWorkflow(name string) (string, error) {
	data, err := os.ReadFile(s.WorkflowPath(name))
	return string(data), err
}

// WriteConfig writes .actionpin.yaml at the repository root
func (s *Scene) WriteConfig(content string) error {
	return os.WriteFile(filepath.Join(s.Dir, ".actionpin.yaml"), []byte(content), 0o644)
}

// CIWorkflow is a workflow with one branch, one tag and one pinned reference
const CIWorkflow = `name: CI
on: [push]
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@main
      - uses: ./local/action
      - uses: actions/cache@0123456789abcdef0123456789abcdef01234567
`

// BasicSceneSetup writes ci.yml
func BasicSceneSetup(scene *Scene) error {
	return scene.WriteWorkflow("ci.yml", CIWorkflow)
}
