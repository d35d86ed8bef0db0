package cli

import (
	"github.com/spf13/cobra"

	"actionpin.dev/actionpin/internal/actions"
	"actionpin.dev/actionpin/internal/runtime"
)

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	var (
		workflowDir string
		extensions  []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List action references that are not pinned to a commit",
		Long: `List every "uses:" reference that is not pinned to a full commit SHA.
Exits non-zero when any is found. No token or network access is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, contextOptions(cmd), func(ctx *runtime.Context) error {
				if err := applyOverrides(ctx.Config, workflowDir, extensions, ""); err != nil {
					return err
				}
				_, err := actions.CheckAction(ctx, actions.CheckOptions{})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&workflowDir, "workflow-dir", "", "Workflow directory, relative to the repository root (default: .github/workflows)")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Manifest file extensions to check (default: .yml)")

	return cmd
}
