package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitfmt/internal/report"
)

// NewReportCommand returns the `commitfmt report` command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Render a JSON report written by check --report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}

	cmd.Flags().String("format", "text", "Output format: text (default) or markdown")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var render func(*report.Report) string
	switch format {
	case "text":
		render = report.RenderText
	case "markdown":
		render = report.RenderMarkdown
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", format)
	}

	rep, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rep == nil {
		_, _ = fmt.Fprintln(out, "No report found.")
		return nil
	}
	if _, err := fmt.Fprint(out, render(rep)); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}
