package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"actionpin.dev/actionpin/internal/actions"
	"actionpin.dev/actionpin/internal/runtime"
)

// newResolveCmd creates the resolve command
func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <owner/repo@ref>",
		Short: "Print the commit SHA a single action reference points at",
		Example: `  actionpin resolve actions/checkout@v4
  actionpin resolve github/codeql-action/init@v3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := contextOptions(cmd)
			opts.RequireGitHub = true

			return run(cmd, opts, func(ctx *runtime.Context) error {
				sha, err := actions.ResolveAction(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sha)
				return err
			})
		},
	}

	return cmd
}
