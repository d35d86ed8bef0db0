package actions

import (
	"errors"
	"fmt"
	"os"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/manifest"
	"actionpin.dev/actionpin/internal/runtime"
	"actionpin.dev/actionpin/internal/tui"
)

// CheckOptions contains options for the check command
type CheckOptions struct {
	Dir        string
	Extensions []string
}

// Unpinned is a reference line that still names a mutable ref
type Unpinned struct {
	Path string
	// Line is 1-based
	Line int
	Text string
}

// CheckAction reports every eligible reference that is not pinned to a
// commit identifier. It never contacts GitHub or writes files.
func CheckAction(ctx *runtime.Context, opts CheckOptions) ([]Unpinned, error) {
	splog := ctx.Splog
	cfg := ctx.Config
	if opts.Dir == "" {
		opts.Dir = config.ResolveWorkflowDir(ctx.RepoRoot, cfg.WorkflowDir)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = cfg.Extensions
	}

	files, err := DiscoverManifests(opts.Dir, opts.Extensions)
	if err != nil {
		return nil, err
	}

	var unpinned []Unpinned
	var fileErrs []error
	for _, path := range files {
		found, err := checkFile(path)
		if err != nil {
			splog.Error("%v", err)
			fileErrs = append(fileErrs, err)
			continue
		}
		for _, u := range found {
			splog.Info("%s:%d: %s", tui.ColorCyan(displayPath(ctx, u.Path)), u.Line, tui.ColorYellow(u.Text))
		}
		unpinned = append(unpinned, found...)
	}

	if len(fileErrs) > 0 {
		return unpinned, errors.Join(fileErrs...)
	}
	if len(unpinned) > 0 {
		return unpinned, fmt.Errorf("%w: %d in %d file(s)", ErrUnpinnedReferences, len(unpinned), countFiles(unpinned))
	}
	splog.Info("All action references in %d file(s) are pinned.", len(files))
	return nil, nil
}

func checkFile(path string) ([]Unpinned, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}

	var found []Unpinned
	for i, raw := range manifest.SplitLines(string(data)) {
		line := manifest.Classify(raw)
		if line.Kind != manifest.Reference {
			continue
		}
		found = append(found, Unpinned{
			Path: path,
			Line: i + 1,
			Text: line.Identity + "@" + line.RefText(),
		})
	}
	return found, nil
}

func countFiles(unpinned []Unpinned) int {
	seen := make(map[string]bool)
	for _, u := range unpinned {
		seen[u.Path] = true
	}
	return len(seen)
}
