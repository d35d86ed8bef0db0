package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"actionpin.dev/actionpin/internal/github"
)

// ConfigFileName is the repository configuration file, relative to the repo root
const ConfigFileName = ".actionpin.yaml"

// Defaults
const (
	DefaultWorkflowDir  = ".github/workflows"
	DefaultExtension    = ".yml"
	DefaultBackupSuffix = ".bak"
	DefaultTokenEnv     = "GITHUB_TOKEN"
)

// ErrMissingToken is returned when no GitHub token is configured
var ErrMissingToken = errors.New("GitHub token is not set")

// ConfigurationError reports a fatal configuration problem detected before
// any file or network work starts
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RepoConfig represents the repository configuration
type RepoConfig struct {
	WorkflowDir  string        `yaml:"workflowDir,omitempty"`
	Extensions   []string      `yaml:"extensions,omitempty"`
	BackupSuffix string        `yaml:"backupSuffix,omitempty"`
	APIURL       string        `yaml:"apiURL,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	TokenEnv     string        `yaml:"tokenEnv,omitempty"`
	CacheSize    int           `yaml:"cacheSize,omitempty"`
}

// DefaultRepoConfig returns the configuration used when nothing is set
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		WorkflowDir:  DefaultWorkflowDir,
		Extensions:   []string{DefaultExtension},
		BackupSuffix: DefaultBackupSuffix,
		APIURL:       github.DefaultAPIURL,
		Timeout:      github.DefaultTimeout,
		TokenEnv:     DefaultTokenEnv,
	}
}

// GetRepoConfig reads the repository configuration, filling unset fields
// with defaults. A missing file is not an error.
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	configPath := filepath.Join(repoRoot, ConfigFileName)

	config := &RepoConfig{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, &ConfigurationError{Setting: ConfigFileName, Err: err}
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid repo config %s: %w", configPath, err)
	}
	return config, nil
}

func (c *RepoConfig) applyDefaults() {
	defaults := DefaultRepoConfig()
	if c.WorkflowDir == "" {
		c.WorkflowDir = defaults.WorkflowDir
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.BackupSuffix == "" {
		c.BackupSuffix = defaults.BackupSuffix
	}
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.TokenEnv == "" {
		c.TokenEnv = defaults.TokenEnv
	}
	c.Extensions = NormalizeExtensions(c.Extensions)
}

// ApplyEnv overrides settings from ACTIONPIN_* environment variables
func (c *RepoConfig) ApplyEnv() {
	if v := os.Getenv("ACTIONPIN_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("ACTIONPIN_WORKFLOW_DIR"); v != "" {
		c.WorkflowDir = v
	}
}

// Validate checks settings that cannot be defaulted
func (c *RepoConfig) Validate() error {
	if c.CacheSize < 0 {
		return &ConfigurationError{Setting: "cacheSize", Err: fmt.Errorf("must not be negative, got %d", c.CacheSize)}
	}
	if strings.ContainsAny(c.BackupSuffix, `/\`) {
		return &ConfigurationError{Setting: "backupSuffix", Err: fmt.Errorf("%q must not contain path separators", c.BackupSuffix)}
	}
	return nil
}

// NormalizeExtensions makes every extension start with a dot and drops empties
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// ResolveWorkflowDir returns dir as an absolute path, relative to repoRoot
func ResolveWorkflowDir(repoRoot, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(repoRoot, dir)
}

// LoadEnvFile loads a dotenv file into the process environment. Variables
// already set are kept. With an empty path, .env in repoRoot is loaded if present.
func LoadEnvFile(repoRoot, path string) error {
	if path == "" {
		candidate := filepath.Join(repoRoot, ".env")
		if _, err := os.Stat(candidate); err != nil {
			return nil
		}
		path = candidate
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// GetToken returns the GitHub token from the configured environment variable
func GetToken(c *RepoConfig) (string, error) {
	name := c.TokenEnv
	if name == "" {
		name = DefaultTokenEnv
	}
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", &ConfigurationError{
			Setting: name,
			Err:     fmt.Errorf("%w: set %s in the environment first", ErrMissingToken, name),
		}
	}
	return token, nil
}
