// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitfmt - Commitfmt is a standalone commit message policy checker for pull requests.
It validates commit titles, body line lengths, the title/body separator and sign-off trailers, and reports every violation in CI logs.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package report holds the results of a validation run and renders them for
// humans (text, markdown step summaries) and machines (JSON).
package report

import (
	"fmt"
	"strings"
)

// RenderText renders the plain listing printed at the end of a run.
func RenderText(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Range: %s\n", r.Range)
	for _, c := range r.Commits {
		fmt.Fprintf(&b, "%s: %s", strings.ToUpper(string(c.Status)), c.SHA)
		if c.Title != "" {
			fmt.Fprintf(&b, " %s", c.Title)
		}
		b.WriteString("\n")
		if c.Note != "" {
			fmt.Fprintf(&b, "  %s\n", c.Note)
		}
	}
	fmt.Fprintf(&b, "%s\n", countLine(r))
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	return b.String()
}

// RenderMarkdown renders the report as a GitHub step summary.
func RenderMarkdown(r *Report) string {
	var b strings.Builder
	b.WriteString(renderHeader(2, "Commit format: "+strings.ToUpper(string(r.Status))))
	fmt.Fprintf(&b, "Range: `%s`\n\n", r.Range)

	if len(r.Commits) == 0 {
		b.WriteString("No commits to check.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Commits))
	for _, c := range r.Commits {
		rows = append(rows, []string{
			"`" + c.SHA + "`",
			string(c.Status),
			orDash(c.Rule),
			orDash(escapeCell(c.Title)),
		})
	}
	b.WriteString(renderTable([]string{"Commit", "Status", "Rule", "Title"}, rows))
	fmt.Fprintf(&b, "\n%s\n", countLine(r))
	return b.String()
}

func countLine(r *Report) string {
	counts := r.Counts()
	return fmt.Sprintf("%d commit(s): %d passed, %d failed, %d skipped",
		len(r.Commits), counts[StatusPass], counts[StatusFail], counts[StatusSkip])
}

// renderTable assumes rows are already in the order they should appear.
func renderTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

func renderHeader(level int, text string) string {
	return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
