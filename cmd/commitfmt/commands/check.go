package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitfmt/cmd/commitfmt/internal/clierr"
	"github.com/bartekus/commitfmt/internal/config"
	"github.com/bartekus/commitfmt/internal/history"
	"github.com/bartekus/commitfmt/internal/policy"
	"github.com/bartekus/commitfmt/internal/report"
	"github.com/bartekus/commitfmt/internal/rules"
	"github.com/bartekus/commitfmt/internal/validator"
	"github.com/bartekus/commitfmt/internal/vcs"
)

const checkLong = `Checks every non-merge commit reachable from <remote>/<base-branch> but not
from <remote>/<upstream-branch>, after fetching <base-branch> from <remote>.

Each commit must have a title of at most 60 characters, a blank second line,
body lines of at most 75 characters and a "Signed-off-by: " trailer. Lines
after the trailer are not length checked. Commits whose author email contains
"dependabot" are skipped. A policy file can override these values.

The range is resolved from, highest precedence first, flags, the environment,
the env file and defaults:

  REMOTE                     remote name (default "origin")
  GITHUB_HEAD_REF            branch under review, set on pull_request events
  BASE_BRANCH                branch under review when GITHUB_HEAD_REF is unset (default "main")
  COMMITFMT_UPSTREAM_BRANCH  lower bound of the range (default "main")
  COMMITFMT_POLICY           policy file (default ".commitfmt.yaml", optional)
  COMMITFMT_BACKEND          "exec" (git binary) or "gogit" (in-process)
  COMMITFMT_LOG_LEVEL        debug, info, warn or error
  GITHUB_STEP_SUMMARY        markdown summary is appended to this file

Exit codes: 0 success, 1 format violation, 2 configuration error,
3 version control failure, 4 report output failure.`

// NewCheckCommand returns the `commitfmt check` command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the commit messages of the current pull request",
		Long:  checkLong,
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().Bool("all", false, "check every commit and report all violations instead of stopping at the first")
	cmd.Flags().String("backend", "", "version control backend: exec or gogit (default: exec)")
	cmd.Flags().String("base-branch", "", "branch under review (default: $GITHUB_HEAD_REF, $BASE_BRANCH or main)")
	cmd.Flags().String("env-file", config.DefaultEnvFile, "dotenv file read before the environment is resolved")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error (default: info)")
	cmd.Flags().String("policy", "", "policy file (default: .commitfmt.yaml when present)")
	cmd.Flags().String("remote", "", "remote to fetch from (default: $REMOTE or origin)")
	cmd.Flags().String("repo", "", "repository directory (default: current directory)")
	cmd.Flags().String("report", "", "write a JSON report to this path")
	cmd.Flags().String("summary", "", "append a markdown summary to this path (default: $GITHUB_STEP_SUMMARY)")
	cmd.Flags().String("upstream-branch", "", "lower bound branch of the range (default: main)")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile, cmd.Flags())
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "invalid configuration", err)
	}

	log, err := newLogger(cmd, cfg.LogLevel)
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "creating logger", err)
	}
	defer func() { _ = log.Sync() }()

	pol, err := policy.Load(cfg.PolicyFile, cfg.PolicyRequired())
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "loading policy", err)
	}

	repo, err := vcs.Open(cfg.Backend, cfg.RepoPath)
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "opening repository", err)
	}

	v := validator.New(repo, validator.Options{
		Range: history.Range{
			Remote:         cfg.Remote,
			BaseBranch:     cfg.BaseBranch,
			UpstreamBranch: cfg.UpstreamBranch,
		},
		Policy:     pol,
		CollectAll: cfg.CollectAll,
		Out:        cmd.OutOrStdout(),
		Log:        log,
	})

	rep, runErr := v.Run(cmd.Context())

	if err := writeOutputs(cfg, rep); err != nil {
		return clierr.Wrap(clierr.CodeOutput, "writing report", err)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), report.RenderText(rep)); err != nil {
		return fmt.Errorf("writing text output: %w", err)
	}

	return classify(runErr)
}

func writeOutputs(cfg *config.Config, rep *report.Report) error {
	if cfg.ReportPath != "" {
		if err := report.WriteJSON(cfg.ReportPath, rep); err != nil {
			return err
		}
	}
	if cfg.SummaryPath != "" {
		if err := report.AppendSummary(cfg.SummaryPath, report.RenderMarkdown(rep)); err != nil {
			return err
		}
	}
	return nil
}

// classify attaches the exit code matching a validation failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *history.ConfigurationError
	if errors.As(err, &cfgErr) {
		return clierr.Wrap(clierr.CodeConfig, "", err)
	}
	var fe *rules.FormatError
	if errors.As(err, &fe) {
		return clierr.Wrap(clierr.CodeViolation, "", err)
	}
	return clierr.Wrap(clierr.CodeVCS, "", err)
}
