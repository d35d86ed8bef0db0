package resolve

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"actionpin.dev/actionpin/internal/action"
)

// CachingResolver remembers successful resolutions for the lifetime of one
// run. Failures are not cached.
type CachingResolver struct {
	inner Resolver
	cache *lru.Cache[action.Reference, string]
}

var _ Resolver = (*CachingResolver)(nil)

// NewCachingResolver wraps inner with an LRU cache holding up to size entries
func NewCachingResolver(inner Resolver, size int) (*CachingResolver, error) {
	cache, err := lru.New[action.Reference, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}
	return &CachingResolver{inner: inner, cache: cache}, nil
}

// Resolve returns a cached commit identifier or delegates to the inner resolver
func (c *CachingResolver) Resolve(ctx context.Context, ref action.Reference) (string, error) {
	// The sub-directory does not change what a ref resolves to
	key := action.Reference{Owner: ref.Owner, Repo: ref.Repo, Ref: ref.Ref}
	if sha, ok := c.cache.Get(key); ok {
		return sha, nil
	}

	sha, err := c.inner.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, sha)
	return sha, nil
}
