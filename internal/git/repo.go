package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// GetRepoRoot returns the root directory of the Git repository containing dir
func GetRepoRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	// Use go-git to find the repository
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	// Get the worktree to find the root
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// GetWorkRoot returns the repository root containing dir, or dir itself
// when dir is not inside a repository
func GetWorkRoot(dir string) (string, error) {
	root, err := GetRepoRoot(dir)
	if err == nil {
		return root, nil
	}
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return filepath.Abs(dir)
	}
	return "", err
}
