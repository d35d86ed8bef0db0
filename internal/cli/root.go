package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"actionpin.dev/actionpin/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actionpin",
		Short: "Pin GitHub Actions references to commit SHAs",
		Long: `actionpin rewrites the "uses: owner/repo@ref" lines of your workflow files
so every action is pinned to the immutable commit its ref points at today.
The original reference is kept in a comment above each pinned line.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			tui.SetupColors(cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", "", "Directory to start repository discovery from (default: working directory)")
	flags.String("env-file", "", "Load environment variables from a dotenv file (default: .env in the repository root)")
	flags.String("log-file", "", "Write a debug log to this file (env: ACTIONPIN_LOG_FILE)")
	flags.Bool("debug", false, "Print debug output")
	flags.BoolP("quiet", "q", false, "Only print errors")

	rootCmd.AddCommand(newPinCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
