// Package scenario provides a high-level test scenario that combines a Scene,
// a mock GitHub server, and a runtime Context to provide a terse API for
// action tests.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/runtime"
	"actionpin.dev/actionpin/internal/tui"
	"actionpin.dev/actionpin/testhelpers"
)

// Scenario represents a high-level test scenario.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	GitHub  *testhelpers.MockGitHubServerConfig
	Context *runtime.Context
	Stdout  *bytes.Buffer
	Stderr  *bytes.Buffer
}

// NewScenario creates a new Scenario with an optional setup function. The
// context resolves through a mock GitHub server and has no confirmer prompts.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	gh := testhelpers.NewMockGitHubServerConfig()
	client, _ := testhelpers.NewMockGitHubClient(t, gh)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	splog := tui.NewSplogWithWriters(stdout, stderr)

	ctx := runtime.NewContext(context.Background(), splog, config.DefaultRepoConfig(), scene.Dir)
	require.NoError(t, ctx.WithResolver(client))
	ctx.Confirmer = &StaticConfirmer{Answer: true}

	return &Scenario{
		T:       t,
		Scene:   scene,
		GitHub:  gh,
		Context: ctx,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

// WithWorkflow writes a workflow file.
func (s *Scenario) WithWorkflow(name, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.WriteWorkflow(name, content))
	return s
}

// WithCommit makes owner/repo@ref resolve through the commits endpoint.
func (s *Scenario) WithCommit(owner, repo, ref, sha string) *Scenario {
	s.GitHub.AddCommit(owner, repo, ref, sha)
	return s
}

// WithTag makes owner/repo@tag resolve through a lightweight tag.
func (s *Scenario) WithTag(owner, repo, tag, sha string) *Scenario {
	s.GitHub.AddLightweightTag(owner, repo, tag, sha)
	return s
}

// WithAnnotatedTag makes owner/repo@tag resolve through an annotated tag.
func (s *Scenario) WithAnnotatedTag(owner, repo, tag, tagSHA, commitSHA string) *Scenario {
	s.GitHub.AddAnnotatedTag(owner, repo, tag, tagSHA, commitSHA)
	return s
}

// WithConfirmer replaces the confirmer used for interactive writes.
func (s *Scenario) WithConfirmer(c tui.Confirmer) *Scenario {
	s.Context.Confirmer = c
	return s
}

// ExpectWorkflow asserts the content of a workflow file.
func (s *Scenario) ExpectWorkflow(name, expected string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectWorkflow(s.T, s.Scene, name, expected)
	return s
}

// ExpectBackup asserts the backup of a workflow file.
func (s *Scenario) ExpectBackup(name, expected string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectBackup(s.T, s.Scene, name, s.Context.Config.BackupSuffix, expected)
	return s
}

// ExpectNoBackup asserts that a workflow file has no backup.
func (s *Scenario) ExpectNoBackup(name string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectNoBackup(s.T, s.Scene, name, s.Context.Config.BackupSuffix)
	return s
}

// StaticConfirmer answers every question the same way and records them.
type StaticConfirmer struct {
	Answer    bool
	Err       error
	Questions []string
}

// Confirm implements tui.Confirmer.
func (c *StaticConfirmer) Confirm(message string, _ bool) (bool, error) {
	c.Questions = append(c.Questions, message)
	return c.Answer, c.Err
}
