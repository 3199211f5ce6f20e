package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitfmt/cmd/commitfmt/internal/clierr"
	"github.com/bartekus/commitfmt/internal/config"
	"github.com/bartekus/commitfmt/internal/history"
	"github.com/bartekus/commitfmt/internal/policy"
	"github.com/bartekus/commitfmt/internal/rules"
)

// scissors is the marker git commit --verbose puts above the diff.
const scissors = "# ------------------------ >8 ------------------------"

// NewLintCommand returns the `commitfmt lint` command.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file|-]",
		Short: "Check a single commit message",
		Long: `Checks one commit message, read from a file or stdin, against the policy.
Install it as a commit-msg hook to catch violations before pushing:

  commitfmt lint "$1"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLint,
	}

	cmd.Flags().String("author", "", "author email used for the exemption check")
	cmd.Flags().String("policy", config.DefaultPolicyFile, "policy file")
	cmd.Flags().Bool("strip-comments", true, "drop lines starting with '#' and everything below the scissors line")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	policyPath, _ := cmd.Flags().GetString("policy")
	author, _ := cmd.Flags().GetString("author")
	strip, _ := cmd.Flags().GetBool("strip-comments")

	pol, err := policy.Load(policyPath, cmd.Flags().Changed("policy"))
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "loading policy", err)
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	msg, err := readMessage(cmd, name)
	if err != nil {
		return clierr.Wrap(clierr.CodeConfig, "reading commit message", err)
	}

	lines := history.SplitMessage(msg)
	if strip {
		lines = stripComments(lines)
	}

	c := history.Commit{SHA: name, AuthorEmail: author, Lines: lines}
	skipped, err := rules.Check(pol, c)
	if err != nil {
		return clierr.Wrap(clierr.CodeViolation, "", err)
	}

	out := cmd.OutOrStdout()
	if skipped {
		_, _ = fmt.Fprintf(out, "SKIP: exempt author %s\n", author)
		return nil
	}
	_, _ = fmt.Fprintln(out, "✓ Commit message format looks good")
	return nil
}

func readMessage(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name) //nolint:gosec // G304: path is the hook argument
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// stripComments mirrors git's default cleanup of comment lines. Trailing
// empty lines are kept so the message still splits like a stored commit.
func stripComments(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == scissors {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}
