package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Options configures an APIClient
type Options struct {
	// BaseURL is the REST API origin, e.g. https://api.github.com/ or
	// https://github.example.com/api/v3/ for GitHub Enterprise
	BaseURL string
	// Token is sent as a bearer credential on every request
	Token string
	// Timeout bounds each request; DefaultTimeout when zero
	Timeout time.Duration
	// Transport is the underlying round tripper; http.DefaultTransport when nil
	Transport http.RoundTripper
}

// APIClient implements Client using the real GitHub API
type APIClient struct {
	client *github.Client
}

var _ Client = (*APIClient)(nil)

// NewAPIClient creates an APIClient restricted to the HTTPS origin of opts.BaseURL
func NewAPIClient(ctx context.Context, opts Options) (*APIClient, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	baseURL, err := ParseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// oauth2 picks its base client up from the context
	guarded := &http.Client{Transport: newOriginGuard(baseURL.Host, opts.Transport)}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, guarded)

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	client := github.NewClient(tc)
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return &APIClient{client: client}, nil
}

// ParseBaseURL validates an API origin and normalizes it to end with a slash.
// Only https URLs are accepted.
func ParseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = DefaultAPIURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, ErrForeignOrigin)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// GetCommitSHA resolves ref through the commits endpoint
func (c *APIClient) GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits/%s", owner, repo, ref)

	sha, _, err := c.client.Repositories.GetCommitSHA1(ctx, owner, repo, ref, "")
	if err != nil {
		return "", classifyError(endpoint, err)
	}

	sha = strings.TrimSpace(sha)
	if sha == "" {
		return "", malformed(endpoint, "empty commit identifier")
	}
	return sha, nil
}

// GetTagRef returns the object refs/tags/<tag> points at
func (c *APIClient) GetTagRef(ctx context.Context, owner, repo, tag string) (*GitObject, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/git/ref/tags/%s", owner, repo, tag)

	ref, _, err := c.client.Git.GetRef(ctx, owner, repo, "tags/"+tag)
	if err != nil {
		return nil, classifyError(endpoint, err)
	}

	return toGitObject(endpoint, ref.GetObject())
}

// GetTagObject returns the object an annotated tag points at
func (c *APIClient) GetTagObject(ctx context.Context, owner, repo, sha string) (*GitObject, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/git/tags/%s", owner, repo, sha)

	tag, _, err := c.client.Git.GetTag(ctx, owner, repo, sha)
	if err != nil {
		return nil, classifyError(endpoint, err)
	}

	return toGitObject(endpoint, tag.GetObject())
}

// GetReleaseTagName returns the tag name declared by a release
func (c *APIClient) GetReleaseTagName(ctx context.Context, owner, repo, tag string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/releases/tags/%s", owner, repo, tag)

	// go-github escapes refs for the commits and git/ref endpoints but not here
	release, _, err := c.client.Repositories.GetReleaseByTag(ctx, owner, repo, escapeRefPath(tag))
	if err != nil {
		return "", classifyError(endpoint, err)
	}

	name := release.GetTagName()
	if name == "" {
		return "", malformed(endpoint, "release has no tag_name")
	}
	return name, nil
}

// escapeRefPath escapes each "/"-separated segment of a ref so characters
// such as '#' and '?' stay part of the path
func escapeRefPath(ref string) string {
	parts := strings.Split(ref, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// toGitObject converts a github.GitObject to GitObject
func toGitObject(endpoint string, obj *github.GitObject) (*GitObject, error) {
	if obj == nil || obj.GetSHA() == "" {
		return nil, malformed(endpoint, "missing object sha")
	}
	return &GitObject{
		Type: obj.GetType(),
		SHA:  obj.GetSHA(),
	}, nil
}
