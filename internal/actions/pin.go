package actions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/manifest"
	"actionpin.dev/actionpin/internal/runtime"
	"actionpin.dev/actionpin/internal/tui"
)

// PinOptions contains options for the pin command
type PinOptions struct {
	// Dir is the workflow directory; the configured one when empty
	Dir          string
	Extensions   []string
	BackupSuffix string
	// DryRun reports what would change without writing anything
	DryRun bool
	// Interactive asks before each manifest is written
	Interactive bool
	// Strict makes unresolved references an error
	Strict bool
}

// PinAction pins every eligible reference in the workflow directory. Files
// are processed in name order; a failing file does not stop the others.
func PinAction(ctx *runtime.Context, opts PinOptions) (*PinSummary, error) {
	opts = pinDefaults(ctx, opts)
	splog := ctx.Splog
	summary := &PinSummary{}

	if ctx.Resolver == nil {
		return nil, fmt.Errorf("no resolver configured")
	}

	files, err := DiscoverManifests(opts.Dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		splog.Info("No workflow files found in %s.", displayPath(ctx, opts.Dir))
		return summary, nil
	}

	rw := manifest.NewRewriter(ctx.Resolver, splog)
	var fileErrs []error
	for _, path := range files {
		report := pinFile(ctx, rw, path, opts)
		if errors.Is(report.Err, tui.ErrPromptCanceled) {
			summary.add(report)
			splog.Info("Canceled.")
			return summary, report.Err
		}
		if report.Err != nil {
			splog.Error("%v", report.Err)
			fileErrs = append(fileErrs, report.Err)
		}
		summary.add(report)
	}

	printPinSummary(ctx, summary, opts.DryRun)

	if len(fileErrs) > 0 {
		return summary, errors.Join(fileErrs...)
	}
	if opts.Strict && summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d unresolved", ErrUnresolvedReferences, summary.Failed)
	}
	return summary, nil
}

func pinDefaults(ctx *runtime.Context, opts PinOptions) PinOptions {
	cfg := ctx.Config
	if opts.Dir == "" {
		opts.Dir = config.ResolveWorkflowDir(ctx.RepoRoot, cfg.WorkflowDir)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = cfg.Extensions
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = cfg.BackupSuffix
	}
	return opts
}

// pinFile rewrites one manifest. Nothing is written unless the rewrite
// changed at least one line.
func pinFile(ctx *runtime.Context, rw *manifest.Rewriter, path string, opts PinOptions) FileReport {
	splog := ctx.Splog
	report := FileReport{Path: path}
	name := displayPath(ctx, path)

	splog.Info("Processing %s", tui.ColorBold(name))

	original, err := os.ReadFile(path)
	if err != nil {
		report.Err = &FileError{Path: path, Op: "read", Err: err}
		return report
	}

	result := rw.Rewrite(ctx.Context, manifest.SplitLines(string(original)))
	report.Pinned = result.Pinned
	report.Failures = result.Failures
	if !result.Changed {
		splog.Debug("No changes for %s", name)
		return report
	}

	if opts.DryRun {
		splog.Info("Would pin %d reference(s) in %s.", len(result.Pinned), name)
		return report
	}

	if opts.Interactive {
		ok, err := ctx.Confirmer.Confirm(fmt.Sprintf("Write %d pinned reference(s) to %s?", len(result.Pinned), name), true)
		if err != nil {
			report.Err = &FileError{Path: path, Op: "confirm write of", Err: err}
			return report
		}
		if !ok {
			splog.Info("Skipped %s.", name)
			return report
		}
	}

	rewritten := []byte(manifest.JoinLines(result.Lines))
	if err := persistManifest(path, opts.BackupSuffix, original, rewritten); err != nil {
		report.Err = err
		return report
	}

	report.Modified = true
	splog.Info("Modified %s %s", tui.ColorGreen(name), tui.ColorDim("(backup: "+filepath.Base(path+opts.BackupSuffix)+")"))
	return report
}

func printPinSummary(ctx *runtime.Context, summary *PinSummary, dryRun bool) {
	splog := ctx.Splog
	splog.Newline()

	switch {
	case dryRun:
		splog.Info("Dry run: %d reference(s) would be pinned.", summary.Pinned)
	case summary.FilesModified == 0:
		splog.Info("No changes made.")
	default:
		splog.Info("Modified %d file(s):", summary.FilesModified)
		for _, path := range summary.ModifiedPaths() {
			splog.Info("  - %s", displayPath(ctx, path))
		}
	}

	if summary.Failed > 0 {
		splog.Warn("%d reference(s) could not be resolved.", summary.Failed)
		splog.Tip("Set %s to a token with access to private action repositories.", ctx.Config.TokenEnv)
	}
}

// displayPath shows path relative to the repository root when possible
func displayPath(ctx *runtime.Context, path string) string {
	if ctx.RepoRoot == "" {
		return path
	}
	rel, err := filepath.Rel(ctx.RepoRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
