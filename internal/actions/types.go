package actions

import (
	"errors"
	"fmt"

	"actionpin.dev/actionpin/internal/manifest"
)

// ErrUnresolvedReferences is returned in strict mode when a reference could not be resolved
var ErrUnresolvedReferences = errors.New("some action references could not be resolved")

// ErrUnpinnedReferences is returned by CheckAction when unpinned references exist
var ErrUnpinnedReferences = errors.New("unpinned action references found")

// FileError reports a manifest that could not be read or written. It aborts
// processing of that file only.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileReport is the outcome for one manifest
type FileReport struct {
	Path     string
	Modified bool
	Pinned   []manifest.Pin
	Failures []manifest.Failure
	Err      error
}

// PinSummary aggregates the reports of a pin run
type PinSummary struct {
	Files         []FileReport
	FilesModified int
	Pinned        int
	Failed        int
	Errored       int
}

func (s *PinSummary) add(report FileReport) {
	s.Files = append(s.Files, report)
	if report.Modified {
		s.FilesModified++
	}
	s.Pinned += len(report.Pinned)
	s.Failed += len(report.Failures)
	if report.Err != nil {
		s.Errored++
	}
}

// ModifiedPaths returns the paths of modified manifests in processing order
func (s *PinSummary) ModifiedPaths() []string {
	var paths []string
	for _, f := range s.Files {
		if f.Modified {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
