package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"

	githubpkg "actionpin.dev/actionpin/internal/github"
)

// MockToken is the bearer token the mock server expects by default
const MockToken = "mock-token"

// MockGitHubServerConfig configures the behavior of a mock GitHub server.
// Map keys are built with RefKey.
type MockGitHubServerConfig struct {
	// Commits maps owner/repo@ref to the commit identifier returned by the commits endpoint
	Commits map[string]string
	// TagRefs maps owner/repo@tag to the object the tag ref points at
	TagRefs map[string]*github.GitObject
	// TagObjects maps owner/repo@tag-object-sha to the object the annotated tag points at
	TagObjects map[string]*github.GitObject
	// Releases maps owner/repo@tag to the tag_name the release declares
	Releases map[string]string
	// MalformedPaths lists request paths answered with 200 and an unparsable body
	MalformedPaths map[string]bool
	// Token is the expected bearer token; requests with another one get 401
	Token string

	mu       sync.Mutex
	requests []string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Commits:        make(map[string]string),
		TagRefs:        make(map[string]*github.GitObject),
		TagObjects:     make(map[string]*github.GitObject),
		Releases:       make(map[string]string),
		MalformedPaths: make(map[string]bool),
		Token:          MockToken,
	}
}

// RefKey builds the map key used by MockGitHubServerConfig
func RefKey(owner, repo, ref string) string {
	return owner + "/" + repo + "@" + ref
}

// AddCommit makes the commits endpoint resolve ref to sha
func (c *MockGitHubServerConfig) AddCommit(owner, repo, ref, sha string) {
	c.Commits[RefKey(owner, repo, ref)] = sha
}

// AddLightweightTag makes tags/<tag> point directly at a commit
func (c *MockGitHubServerConfig) AddLightweightTag(owner, repo, tag, commitSHA string) {
	c.TagRefs[RefKey(owner, repo, tag)] = &github.GitObject{
		Type: github.String("commit"),
		SHA:  github.String(commitSHA),
	}
}

// AddAnnotatedTag makes tags/<tag> point at a tag object which points at a commit
func (c *MockGitHubServerConfig) AddAnnotatedTag(owner, repo, tag, tagSHA, commitSHA string) {
	c.TagRefs[RefKey(owner, repo, tag)] = &github.GitObject{
		Type: github.String("tag"),
		SHA:  github.String(tagSHA),
	}
	c.TagObjects[RefKey(owner, repo, tagSHA)] = &github.GitObject{
		Type: github.String("commit"),
		SHA:  github.String(commitSHA),
	}
}

// AddRelease registers a release found by releaseTag that declares tagName
func (c *MockGitHubServerConfig) AddRelease(owner, repo, releaseTag, tagName string) {
	c.Releases[RefKey(owner, repo, releaseTag)] = tagName
}

// Requests returns the paths of all requests received so far, in order
func (c *MockGitHubServerConfig) Requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.requests))
	copy(out, c.requests)
	return out
}

func (c *MockGitHubServerConfig) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, r.URL.Path)
}

// NewMockGitHubServer creates an httptest TLS server that mocks the GitHub
// endpoints used for reference resolution
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /repos/{owner}/{repo}/commits/{ref...}", func(w http.ResponseWriter, r *http.Request) {
		sha, ok := config.Commits[RefKey(r.PathValue("owner"), r.PathValue("repo"), r.PathValue("ref"))]
		if !ok {
			writeNotFound(w)
			return
		}
		// The commit identifier media type answers with plain text
		w.Header().Set("Content-Type", "application/vnd.github.v3.sha; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, sha)
	})

	mux.HandleFunc("GET /repos/{owner}/{repo}/git/ref/tags/{tag...}", func(w http.ResponseWriter, r *http.Request) {
		obj, ok := config.TagRefs[RefKey(r.PathValue("owner"), r.PathValue("repo"), r.PathValue("tag"))]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, &github.Reference{
			Ref:    github.String("refs/tags/" + r.PathValue("tag")),
			Object: obj,
		})
	})

	mux.HandleFunc("GET /repos/{owner}/{repo}/git/tags/{sha}", func(w http.ResponseWriter, r *http.Request) {
		obj, ok := config.TagObjects[RefKey(r.PathValue("owner"), r.PathValue("repo"), r.PathValue("sha"))]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, &github.Tag{
			SHA:    github.String(r.PathValue("sha")),
			Object: obj,
		})
	})

	mux.HandleFunc("GET /repos/{owner}/{repo}/releases/tags/{tag...}", func(w http.ResponseWriter, r *http.Request) {
		tagName, ok := config.Releases[RefKey(r.PathValue("owner"), r.PathValue("repo"), r.PathValue("tag"))]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, &github.RepositoryRelease{
			TagName: github.String(tagName),
			Name:    github.String(r.PathValue("tag")),
		})
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		config.record(r)
		if config.Token != "" && r.Header.Get("Authorization") != "Bearer "+config.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		if config.MalformedPaths[r.URL.Path] {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprint(w, `{"object": not-json}`)
			return
		}
		mux.ServeHTTP(w, r)
	})

	server := httptest.NewTLSServer(handler)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates an APIClient configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*githubpkg.APIClient, *httptest.Server) {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)

	token := config.Token
	if token == "" {
		token = MockToken
	}

	client, err := githubpkg.NewAPIClient(context.Background(), githubpkg.Options{
		BaseURL:   server.URL + "/",
		Token:     token,
		Transport: server.Client().Transport,
	})
	if err != nil {
		t.Fatalf("Failed to create mock GitHub client: %v", err)
	}
	return client, server
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
