// Package config builds the run configuration from flags, environment and an
// optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/bartekus/commitfmt/internal/vcs"
)

const (
	DefaultRemote         = "origin"
	DefaultBaseBranch     = "main"
	DefaultUpstreamBranch = "main"
	DefaultPolicyFile     = ".commitfmt.yaml"
	DefaultEnvFile        = ".env"
	DefaultLogLevel       = "info"
	DefaultBackend        = vcs.BackendExec
)

// Environment variables read by Load.
const (
	EnvRemote         = "REMOTE"
	EnvHeadRef        = "GITHUB_HEAD_REF"
	EnvBaseBranch     = "BASE_BRANCH"
	EnvUpstreamBranch = "COMMITFMT_UPSTREAM_BRANCH"
	EnvPolicy         = "COMMITFMT_POLICY"
	EnvBackend        = "COMMITFMT_BACKEND"
	EnvLogLevel       = "COMMITFMT_LOG_LEVEL"
	EnvStepSummary    = "GITHUB_STEP_SUMMARY"
)

// Config is built once at process start and passed down explicitly.
type Config struct {
	Remote         string `mapstructure:"remote"`
	BaseBranch     string `mapstructure:"base_branch"`
	UpstreamBranch string `mapstructure:"upstream_branch"`
	RepoPath       string `mapstructure:"repo"`
	Backend        string `mapstructure:"backend"`
	PolicyFile     string `mapstructure:"policy"`
	LogLevel       string `mapstructure:"log_level"`
	ReportPath     string `mapstructure:"report"`
	SummaryPath    string `mapstructure:"summary"`
	CollectAll     bool   `mapstructure:"all"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"remote":          "remote",
	"base-branch":     "base_branch",
	"upstream-branch": "upstream_branch",
	"repo":            "repo",
	"backend":         "backend",
	"policy":          "policy",
	"log-level":       "log_level",
	"report":          "report",
	"summary":         "summary",
	"all":             "all",
}

// Load resolves the configuration. Precedence, highest first: flags that were
// set explicitly, environment, envFile, defaults. Variables from envFile never
// override the environment. flags may be nil.
func Load(envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		return nil, err
	}
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	envMap, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote", DefaultRemote)
	v.SetDefault("base_branch", DefaultBaseBranch)
	v.SetDefault("upstream_branch", DefaultUpstreamBranch)
	v.SetDefault("repo", "")
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("policy", DefaultPolicyFile)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("report", "")
	v.SetDefault("summary", "")
	v.SetDefault("all", false)
}

func bindEnvs(v *viper.Viper) error {
	envs := map[string][]string{
		"remote": {EnvRemote},
		// GITHUB_HEAD_REF is set on pull_request events and wins over BASE_BRANCH.
		"base_branch":     {EnvHeadRef, EnvBaseBranch},
		"upstream_branch": {EnvUpstreamBranch},
		"policy":          {EnvPolicy},
		"backend":         {EnvBackend},
		"log_level":       {EnvLogLevel},
		"summary":         {EnvStepSummary},
	}
	for key, names := range envs {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("binding env for %s: %w", key, err)
		}
	}
	return nil
}

// Validate rejects configurations that cannot name a commit range.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Remote) == "" {
		return errors.New("remote must not be empty")
	}
	if strings.TrimSpace(c.BaseBranch) == "" {
		return errors.New("base branch must not be empty")
	}
	if strings.TrimSpace(c.UpstreamBranch) == "" {
		return errors.New("upstream branch must not be empty")
	}
	if !slices.Contains(vcs.Backends(), c.Backend) {
		return fmt.Errorf("unknown backend %q (must be one of %s)", c.Backend, strings.Join(vcs.Backends(), ", "))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// PolicyRequired reports whether the policy file was named explicitly and so
// must exist.
func (c Config) PolicyRequired() bool {
	return c.PolicyFile != DefaultPolicyFile
}
