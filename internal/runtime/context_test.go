package runtime_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/resolve"
	"actionpin.dev/actionpin/internal/runtime"
	"actionpin.dev/actionpin/testhelpers"
)

func options(scene *testhelpers.Scene) runtime.Options {
	return runtime.Options{
		Dir:    scene.WorkflowDir,
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

func TestGetContext(t *testing.T) {
	t.Run("finds the repository root and loads its config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.WriteConfig("extensions: [yml, yaml]\n")
		})

		ctx, err := runtime.GetContext(context.Background(), options(scene))
		require.NoError(t, err)
		require.Equal(t, []string{".yml", ".yaml"}, ctx.Config.Extensions)
		require.Nil(t, ctx.Resolver)
		require.NotNil(t, ctx.Confirmer)
	})

	t.Run("fails fast without a token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		scene := testhelpers.NewScene(t, nil)
		opts := options(scene)
		opts.RequireGitHub = true

		_, err := runtime.GetContext(context.Background(), opts)
		require.ErrorIs(t, err, config.ErrMissingToken)
	})

	t.Run("creates no log file without a token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		scene := testhelpers.NewScene(t, nil)
		logDir := filepath.Join(t.TempDir(), "logs")
		opts := options(scene)
		opts.RequireGitHub = true
		opts.LogFile = filepath.Join(logDir, "actionpin.log")

		_, err := runtime.GetContext(context.Background(), opts)
		require.ErrorIs(t, err, config.ErrMissingToken)
		_, err = os.Stat(logDir)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("rejects a non-https API origin", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "secret")
		t.Setenv("ACTIONPIN_API_URL", "http://api.github.com/")
		scene := testhelpers.NewScene(t, nil)
		opts := options(scene)
		opts.RequireGitHub = true

		_, err := runtime.GetContext(context.Background(), opts)
		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, "apiURL", cfgErr.Setting)
	})

	t.Run("connects with a token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "secret")
		scene := testhelpers.NewScene(t, nil)
		opts := options(scene)
		opts.RequireGitHub = true

		ctx, err := runtime.GetContext(context.Background(), opts)
		require.NoError(t, err)
		require.NotNil(t, ctx.Client)
		require.IsType(t, &resolve.ChainResolver{}, ctx.Resolver)
	})

	t.Run("cache size enables the caching resolver", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		opts := options(scene)
		opts.CacheSize = 16

		ctx, err := runtime.GetContext(context.Background(), opts)
		require.NoError(t, err)
		client, _ := testhelpers.NewMockGitHubClient(t, nil)
		require.NoError(t, ctx.WithResolver(client))
		require.IsType(t, &resolve.CachingResolver{}, ctx.Resolver)
	})

	t.Run("rejects a negative cache size", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		opts := options(scene)
		opts.CacheSize = -1

		_, err := runtime.GetContext(context.Background(), opts)
		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}
