package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"actionpin.dev/actionpin/internal/config"
	"actionpin.dev/actionpin/internal/git"
	"actionpin.dev/actionpin/internal/github"
	"actionpin.dev/actionpin/internal/resolve"
	"actionpin.dev/actionpin/internal/tui"
)

// Context provides access to configuration, output and GitHub for actions
type Context struct {
	Context   context.Context
	Splog     *tui.Splog
	Config    *config.RepoConfig
	RepoRoot  string
	Client    github.Client
	Resolver  resolve.Resolver
	Confirmer tui.Confirmer
}

// Options controls how GetContext builds a Context
type Options struct {
	// Dir is where repository discovery starts; the working directory when empty
	Dir string
	// EnvFile is a dotenv file to load; .env in the repo root when empty
	EnvFile string
	// LogFile enables file logging
	LogFile string
	Debug   bool
	Quiet   bool
	// Stdout and Stderr receive console output; os.Stdout and os.Stderr when nil
	Stdout io.Writer
	Stderr io.Writer
	// RequireGitHub makes a missing token fatal and connects the resolver
	RequireGitHub bool
	// CacheSize enables the in-run resolver cache when positive; the config
	// value is used when zero
	CacheSize int
}

// NewContext creates a context around an existing configuration. It has no
// GitHub client until WithResolver or Connect is called.
func NewContext(ctx context.Context, splog *tui.Splog, cfg *config.RepoConfig, repoRoot string) *Context {
	return &Context{
		Context:   ctx,
		Splog:     splog,
		Config:    cfg,
		RepoRoot:  repoRoot,
		Confirmer: tui.SurveyConfirmer{},
	}
}

// GetContext loads configuration and, when required, validates the GitHub
// credential before any file or network work happens.
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repoRoot, err := git.GetWorkRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate repository: %w", err)
	}

	if err := config.LoadEnvFile(repoRoot, opts.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if opts.CacheSize != 0 {
		cfg.CacheSize = opts.CacheSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// The log file is only created once the credential is known to exist
	if opts.RequireGitHub {
		if _, err := config.GetToken(cfg); err != nil {
			return nil, err
		}
	}

	splog, err := tui.NewSplogWithConfig(tui.SplogConfig{
		LogFile: tui.GetLogFilePath(opts.LogFile),
		Debug:   opts.Debug || os.Getenv("DEBUG") != "",
		Quiet:   opts.Quiet,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
	})
	if err != nil {
		return nil, err
	}

	rc := NewContext(ctx, splog, cfg, repoRoot)
	if opts.RequireGitHub {
		if err := rc.Connect(); err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Connect creates the GitHub client and resolver from the configuration.
// A missing token is reported as a *config.ConfigurationError.
func (c *Context) Connect() error {
	token, err := config.GetToken(c.Config)
	if err != nil {
		return err
	}

	client, err := github.NewAPIClient(c.Context, github.Options{
		BaseURL: c.Config.APIURL,
		Token:   token,
		Timeout: c.Config.Timeout,
	})
	if err != nil {
		return &config.ConfigurationError{Setting: "apiURL", Err: err}
	}

	return c.WithResolver(client)
}

// WithResolver wires client into a ChainResolver, cached when configured
func (c *Context) WithResolver(client github.Client) error {
	c.Client = client
	var resolver resolve.Resolver = resolve.NewChainResolver(client, c.Splog)
	if c.Config.CacheSize > 0 {
		cached, err := resolve.NewCachingResolver(resolver, c.Config.CacheSize)
		if err != nil {
			return err
		}
		resolver = cached
	}
	c.Resolver = resolver
	return nil
}
