package github_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	githubpkg "actionpin.dev/actionpin/internal/github"
	"actionpin.dev/actionpin/testhelpers"
)

var (
	commitSHA = strings.Repeat("c", 40)
	tagSHA    = strings.Repeat("7", 40)
)

func TestGetCommitSHA(t *testing.T) {
	t.Run("returns the commit identifier for a branch", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddCommit("actions", "checkout", "main", commitSHA)
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		sha, err := client.GetCommitSHA(context.Background(), "actions", "checkout", "main")
		require.NoError(t, err)
		require.Equal(t, commitSHA, sha)
		require.Equal(t, []string{"/repos/actions/checkout/commits/main"}, config.Requests())
	})

	t.Run("returns a transport error for a missing ref", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		_, err := client.GetCommitSHA(context.Background(), "actions", "checkout", "nope")
		require.Error(t, err)
		var transportErr *githubpkg.TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Contains(t, transportErr.Endpoint, "commits/nope")
	})

	t.Run("returns a transport error for bad credentials", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddCommit("actions", "checkout", "main", commitSHA)
		server := testhelpers.NewMockGitHubServer(t, config)

		client, err := githubpkg.NewAPIClient(context.Background(), githubpkg.Options{
			BaseURL:   server.URL,
			Token:     "wrong-token",
			Transport: server.Client().Transport,
		})
		require.NoError(t, err)

		_, err = client.GetCommitSHA(context.Background(), "actions", "checkout", "main")
		var transportErr *githubpkg.TransportError
		require.True(t, errors.As(err, &transportErr))
	})
}

func TestGetTagRef(t *testing.T) {
	t.Run("returns a commit object for a lightweight tag", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddLightweightTag("actions", "setup-go", "v5", commitSHA)
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		obj, err := client.GetTagRef(context.Background(), "actions", "setup-go", "v5")
		require.NoError(t, err)
		require.Equal(t, githubpkg.ObjectTypeCommit, obj.Type)
		require.Equal(t, commitSHA, obj.SHA)
		require.Equal(t, []string{"/repos/actions/setup-go/git/ref/tags/v5"}, config.Requests())
	})

	t.Run("returns a tag object for an annotated tag", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddAnnotatedTag("actions", "setup-go", "v5", tagSHA, commitSHA)
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		obj, err := client.GetTagRef(context.Background(), "actions", "setup-go", "v5")
		require.NoError(t, err)
		require.Equal(t, githubpkg.ObjectTypeTag, obj.Type)
		require.Equal(t, tagSHA, obj.SHA)
	})

	t.Run("returns a malformed response error for an unparsable body", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.MalformedPaths["/repos/actions/setup-go/git/ref/tags/v5"] = true
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		_, err := client.GetTagRef(context.Background(), "actions", "setup-go", "v5")
		var malformedErr *githubpkg.MalformedResponseError
		require.True(t, errors.As(err, &malformedErr), "got %v", err)
	})
}

func TestGetTagObject(t *testing.T) {
	config := testhelpers.NewMockGitHubServerConfig()
	config.AddAnnotatedTag("actions", "setup-go", "v5", tagSHA, commitSHA)
	client, _ := testhelpers.NewMockGitHubClient(t, config)

	obj, err := client.GetTagObject(context.Background(), "actions", "setup-go", tagSHA)
	require.NoError(t, err)
	require.Equal(t, githubpkg.ObjectTypeCommit, obj.Type)
	require.Equal(t, commitSHA, obj.SHA)
	require.Equal(t, []string{"/repos/actions/setup-go/git/tags/" + tagSHA}, config.Requests())
}

func TestGetReleaseTagName(t *testing.T) {
	t.Run("returns the declared tag name", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddRelease("owner", "tool", "stable", "v1.2.3")
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		name, err := client.GetReleaseTagName(context.Background(), "owner", "tool", "stable")
		require.NoError(t, err)
		require.Equal(t, "v1.2.3", name)
	})

	t.Run("escapes the tag in the request path", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddRelease("owner", "tool", "v1", "v1")
		config.AddRelease("owner", "tool", "release/v1#rc?1", "v1.0.0-rc1")
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		name, err := client.GetReleaseTagName(context.Background(), "owner", "tool", "release/v1#rc?1")
		require.NoError(t, err)
		require.Equal(t, "v1.0.0-rc1", name)

		_, err = client.GetReleaseTagName(context.Background(), "owner", "tool", "v1#nightly")
		var transportErr *githubpkg.TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Equal(t, []string{
			"/repos/owner/tool/releases/tags/release/v1#rc?1",
			"/repos/owner/tool/releases/tags/v1#nightly",
		}, config.Requests())
	})

	t.Run("rejects a release without tag name", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.AddRelease("owner", "tool", "stable", "")
		client, _ := testhelpers.NewMockGitHubClient(t, config)

		_, err := client.GetReleaseTagName(context.Background(), "owner", "tool", "stable")
		var malformedErr *githubpkg.MalformedResponseError
		require.True(t, errors.As(err, &malformedErr))
	})
}

func TestNewAPIClient(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		_, err := githubpkg.NewAPIClient(context.Background(), githubpkg.Options{})
		require.Error(t, err)
	})

	t.Run("rejects a non-https origin", func(t *testing.T) {
		_, err := githubpkg.NewAPIClient(context.Background(), githubpkg.Options{
			BaseURL: "http://api.github.com/",
			Token:   "token",
		})
		require.ErrorIs(t, err, githubpkg.ErrForeignOrigin)
	})

	t.Run("rejects a file origin", func(t *testing.T) {
		_, err := githubpkg.NewAPIClient(context.Background(), githubpkg.Options{
			BaseURL: "file:///etc/passwd",
			Token:   "token",
		})
		require.ErrorIs(t, err, githubpkg.ErrForeignOrigin)
	})
}

func TestParseBaseURL(t *testing.T) {
	u, err := githubpkg.ParseBaseURL("")
	require.NoError(t, err)
	require.Equal(t, githubpkg.DefaultAPIURL, u.String())

	u, err = githubpkg.ParseBaseURL("https://github.example.com/api/v3")
	require.NoError(t, err)
	require.Equal(t, "https://github.example.com/api/v3/", u.String())
}
