package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"actionpin.dev/actionpin/internal/actions"
	"actionpin.dev/actionpin/internal/runtime"
	"actionpin.dev/actionpin/internal/tui"
)

// newPinCmd creates the pin command
func newPinCmd() *cobra.Command {
	var (
		workflowDir  string
		extensions   []string
		backupSuffix string
		dryRun       bool
		interactive  bool
		strict       bool
		cacheSize    int
	)

	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Pin every action reference in the workflow directory",
		Long: `Pin every "uses: owner/repo@ref" line in the workflow directory to the commit
the ref currently points at. Each modified file is backed up first.

Refs are looked up as a commit (branch or SHA prefix), then as a tag
(annotated tags are followed to their commit), then as a release.
A token is read from GITHUB_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interactive && !tui.IsInteractive() {
				return fmt.Errorf("--interactive requires a terminal")
			}
			opts := contextOptions(cmd)
			opts.RequireGitHub = true
			opts.CacheSize = cacheSize

			return run(cmd, opts, func(ctx *runtime.Context) error {
				if err := applyOverrides(ctx.Config, workflowDir, extensions, backupSuffix); err != nil {
					return err
				}
				_, err := actions.PinAction(ctx, actions.PinOptions{
					DryRun:      dryRun,
					Interactive: interactive,
					Strict:      strict,
				})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&workflowDir, "workflow-dir", "", "Workflow directory, relative to the repository root (default: .github/workflows)")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Manifest file extensions to process (default: .yml)")
	cmd.Flags().StringVar(&backupSuffix, "backup-suffix", "", "Suffix appended to backup files (default: .bak)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be pinned without writing files")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Confirm before writing each file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when a reference cannot be resolved")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "Remember up to this many resolved references during the run")

	return cmd
}
