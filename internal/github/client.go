// Package github provides a read-only client for the GitHub endpoints used to
// resolve action references to commit identifiers.
package github

import (
	"context"
	"time"
)

// DefaultAPIURL is the hosted GitHub REST API origin
const DefaultAPIURL = "https://api.github.com/"

// DefaultTimeout bounds every request issued by the client
const DefaultTimeout = 20 * time.Second

// Object types reported by the git refs and tags endpoints
const (
	ObjectTypeCommit = "commit"
	ObjectTypeTag    = "tag"
)

// GitObject is the target of a ref or an annotated tag.
// This is a simplified struct to avoid coupling callers to go-github.
type GitObject struct {
	Type string
	SHA  string
}

// Client is an interface for the GitHub lookups needed by the resolver.
// Every method issues exactly one GET request.
type Client interface {
	// GetCommitSHA resolves a branch, tag or commit identifier through the
	// commit endpoint and returns the commit identifier
	GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, error)

	// GetTagRef returns the object a tags/<tag> ref points at
	GetTagRef(ctx context.Context, owner, repo, tag string) (*GitObject, error)

	// GetTagObject returns the object an annotated tag object points at
	GetTagObject(ctx context.Context, owner, repo, sha string) (*GitObject, error)

	// GetReleaseTagName returns the tag name declared by the release whose tag is tag
	GetReleaseTagName(ctx context.Context, owner, repo, tag string) (string, error)
}
