// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitfmt - Commitfmt is a standalone commit message policy checker for pull requests.
It validates commit titles, body line lengths, the title/body separator and sign-off trailers, and reports every violation in CI logs.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands of the commitfmt CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/commitfmt/internal/logging"
)

// NewRootCmd constructs the commitfmt root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITFMT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "commitfmt",
		Short:         "commitfmt - commit message policy checks for pull requests",
		Long:          "commitfmt checks that the commits of a pull request follow the 60/75 rule, separate title and body with a blank line and carry a Signed-off-by trailer.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitfmt",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitfmt version %s\n", version)
		},
	})

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewPolicyCommand())
	cmd.AddCommand(NewReportCommand())

	return cmd
}

// newLogger builds the logger for level, forcing debug under --verbose.
func newLogger(cmd *cobra.Command, level string) (*zap.SugaredLogger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logging.New(level)
}
