// Package action defines the action reference and commit identifier types
// shared by the resolver and the manifest rewriter.
package action

import (
	"fmt"
	"strings"
)

// CommitIDLength is the length of a full hexadecimal commit identifier
const CommitIDLength = 40

// Reference identifies a reusable action at a given revision.
// Ref may be a branch, a tag or already a commit identifier.
type Reference struct {
	Owner string
	Repo  string
	// Path is the sub-directory of a composite action inside the repository.
	// It is part of the manifest text but never of the API lookups.
	Path string
	Ref  string
}

// Identity returns the owner/repo[/path] part of the reference
func (r Reference) Identity() string {
	if r.Path == "" {
		return r.Owner + "/" + r.Repo
	}
	return r.Owner + "/" + r.Repo + "/" + r.Path
}

// String returns the reference as written in a manifest: identity@ref
func (r Reference) String() string {
	return r.Identity() + "@" + r.Ref
}

// ParseIdentity splits an owner/repo[/path] identity.
// It returns false when the identity has no owner/repo separator or either
// component is empty.
func ParseIdentity(identity string) (owner, repo, path string, ok bool) {
	owner, rest, found := strings.Cut(identity, "/")
	if !found || owner == "" || rest == "" {
		return "", "", "", false
	}
	repo, path, _ = strings.Cut(rest, "/")
	if repo == "" {
		return "", "", "", false
	}
	return owner, repo, path, true
}

// Parse parses an identity@ref string such as "actions/checkout@v4"
func Parse(s string) (Reference, error) {
	identity, ref, found := strings.Cut(s, "@")
	if !found || ref == "" {
		return Reference{}, fmt.Errorf("invalid action reference %q: expected owner/repo@ref", s)
	}
	owner, repo, path, ok := ParseIdentity(identity)
	if !ok {
		return Reference{}, fmt.Errorf("invalid action reference %q: expected owner/repo@ref", s)
	}
	return Reference{Owner: owner, Repo: repo, Path: path, Ref: ref}, nil
}

// IsCommitID reports whether s is a full commit identifier:
// exactly 40 hexadecimal characters in either case.
func IsCommitID(s string) bool {
	if len(s) != CommitIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
