package cli

import (
	"github.com/spf13/cobra"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/runtime"
)

// getContext is replaced in tests to inject a mock GitHub client
var getContext = runtime.GetContext

// contextOptions reads the persistent flags shared by every command
func contextOptions(cmd *cobra.Command) runtime.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	envFile, _ := flags.GetString("env-file")
	logFile, _ := flags.GetString("log-file")
	debug, _ := flags.GetBool("debug")
	quiet, _ := flags.GetBool("quiet")

	return runtime.Options{
		Dir:     dir,
		EnvFile: envFile,
		LogFile: logFile,
		Debug:   debug,
		Quiet:   quiet,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	}
}

// run is a helper that provides a runtime context to a command's execution function
func run(cmd *cobra.Command, opts runtime.Options, fn func(ctx *runtime.Context) error) error {
	ctx, err := getContext(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()
	return fn(ctx)
}

// applyOverrides layers command flags over the loaded configuration
func applyOverrides(cfg *config.RepoConfig, workflowDir string, extensions []string, backupSuffix string) error {
	if workflowDir != "" {
		cfg.WorkflowDir = workflowDir
	}
	if exts := config.NormalizeExtensions(extensions); len(exts) > 0 {
		cfg.Extensions = exts
	}
	if backupSuffix != "" {
		cfg.BackupSuffix = backupSuffix
	}
	return cfg.Validate()
}
