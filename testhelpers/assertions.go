package testhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns val. Used in test setup.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectWorkflow asserts the content of a workflow file
func ExpectWorkflow(t *testing.T, scene *Scene, name, expected string) {
	t.Helper()
	actual, err := scene.ReadWorkflow(name)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

// ExpectBackup asserts that name+suffix exists and holds expected
func ExpectBackup(t *testing.T, scene *Scene, name, suffix, expected string) {
	t.Helper()
	data, err := os.ReadFile(scene.WorkflowPath(name) + suffix)
	require.NoError(t, err)
	require.Equal(t, expected, string(data))
}

// ExpectNoBackup asserts that no backup was written for name
func ExpectNoBackup(t *testing.T, scene *Scene, name, suffix string) {
	t.Helper()
	_, err := os.Stat(scene.WorkflowPath(name) + suffix)
	require.True(t, os.IsNotExist(err), "unexpected backup for %s", name)
}
