// Package resolve maps mutable action refs (branches, tags, release names)
// to immutable commit identifiers.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"actionpin.dev/actionpin/internal/action"
	"actionpin.dev/actionpin/internal/github"
	"actionpin.dev/actionpin/internal/tui"
)

// ErrInvalidCommitID is returned when an endpoint answers with something that
// is not a full commit identifier
var ErrInvalidCommitID = errors.New("not a full commit identifier")

// Resolver resolves an action reference to a commit identifier
type Resolver interface {
	Resolve(ctx context.Context, ref action.Reference) (string, error)
}

// UnresolvedError is returned when every lookup step failed for a reference
type UnresolvedError struct {
	Ref      action.Reference
	Attempts []error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("could not resolve %s/%s@%s", e.Ref.Owner, e.Ref.Repo, e.Ref.Ref)
}

func (e *UnresolvedError) Unwrap() []error {
	return e.Attempts
}

// ChainResolver tries the commit, tag-ref and release endpoints in order.
// The first step producing a commit identifier wins; a failing step never
// aborts the chain.
type ChainResolver struct {
	client github.Client
	splog  *tui.Splog
}

var _ Resolver = (*ChainResolver)(nil)

// NewChainResolver creates a ChainResolver. splog may be nil.
func NewChainResolver(client github.Client, splog *tui.Splog) *ChainResolver {
	return &ChainResolver{client: client, splog: splog}
}

type lookupStep struct {
	name string
	fn   func(ctx context.Context, ref action.Reference) (string, error)
}

// Resolve returns the commit identifier ref currently points at, or an
// *UnresolvedError carrying each step's failure.
func (r *ChainResolver) Resolve(ctx context.Context, ref action.Reference) (string, error) {
	steps := []lookupStep{
		{name: "commit", fn: r.lookupCommit},
		{name: "tag", fn: func(ctx context.Context, ref action.Reference) (string, error) {
			return r.lookupTag(ctx, ref.Owner, ref.Repo, ref.Ref)
		}},
		{name: "release", fn: r.lookupRelease},
	}

	var attempts []error
	for _, step := range steps {
		sha, err := step.fn(ctx, ref)
		if err == nil {
			r.debug("%s lookup resolved %s to %s", step.name, ref, sha)
			return sha, nil
		}
		r.debug("%s lookup failed for %s: %v", step.name, ref, err)
		attempts = append(attempts, fmt.Errorf("%s lookup: %w", step.name, err))
	}

	return "", &UnresolvedError{Ref: ref, Attempts: attempts}
}

// lookupCommit works uniformly for branches, tags and commit identifiers
func (r *ChainResolver) lookupCommit(ctx context.Context, ref action.Reference) (string, error) {
	sha, err := r.client.GetCommitSHA(ctx, ref.Owner, ref.Repo, ref.Ref)
	if err != nil {
		return "", err
	}
	return commitID(sha)
}

// maxTagDepth bounds how many nested annotated tags are followed
const maxTagDepth = 5

// lookupTag resolves refs/tags/<tag>. Annotated tags, including tags of
// tags, are dereferenced to the commit they point at; if that fails the
// outermost tag object's own identifier is returned.
func (r *ChainResolver) lookupTag(ctx context.Context, owner, repo, tag string) (string, error) {
	obj, err := r.client.GetTagRef(ctx, owner, repo, tag)
	if err != nil {
		return "", err
	}
	if obj.Type == github.ObjectTypeCommit {
		return commitID(obj.SHA)
	}

	sha, err := r.dereferenceTag(ctx, owner, repo, obj.SHA)
	if err == nil {
		return sha, nil
	}
	r.debug("could not dereference tag object %s for %s/%s@%s, using it as is: %v", obj.SHA, owner, repo, tag, err)
	return commitID(obj.SHA)
}

// dereferenceTag follows tag objects starting at sha until it reaches a commit
func (r *ChainResolver) dereferenceTag(ctx context.Context, owner, repo, sha string) (string, error) {
	for depth := 0; depth < maxTagDepth; depth++ {
		target, err := r.client.GetTagObject(ctx, owner, repo, sha)
		if err != nil {
			return "", err
		}
		switch target.Type {
		case github.ObjectTypeCommit:
			return commitID(target.SHA)
		case github.ObjectTypeTag:
			sha = target.SHA
		default:
			return "", fmt.Errorf("tag %s points at a %s, not a commit", sha, target.Type)
		}
	}
	return "", fmt.Errorf("more than %d nested tags", maxTagDepth)
}

// lookupRelease finds the tag declared by a release and resolves it as a tag
func (r *ChainResolver) lookupRelease(ctx context.Context, ref action.Reference) (string, error) {
	tagName, err := r.client.GetReleaseTagName(ctx, ref.Owner, ref.Repo, ref.Ref)
	if err != nil {
		return "", err
	}
	return r.lookupTag(ctx, ref.Owner, ref.Repo, tagName)
}

func (r *ChainResolver) debug(format string, args ...interface{}) {
	if r.splog != nil {
		r.splog.Debug(format, args...)
	}
}

func commitID(sha string) (string, error) {
	if !action.IsCommitID(sha) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCommitID, sha)
	}
	return sha, nil
}
