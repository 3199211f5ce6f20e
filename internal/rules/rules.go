// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rules applies the commit message policy to a single commit.
package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bartekus/commitfmt/internal/history"
	"github.com/bartekus/commitfmt/internal/policy"
)

// Kind identifies which rule a commit violated.
type Kind string

const (
	KindTooShort         Kind = "too-short-message"
	KindMissingBlankLine Kind = "missing-blank-line"
	KindTitleTooLong     Kind = "title-too-long"
	KindBodyLineTooLong  Kind = "body-line-too-long"
	KindMissingSignoff   Kind = "missing-signoff"
)

// Kinds returns every rule kind in evaluation order.
func Kinds() []Kind {
	return []Kind{KindTooShort, KindMissingBlankLine, KindTitleTooLong, KindBodyLineTooLong, KindMissingSignoff}
}

// minLines is title, blank separator and at least one body or trailer line.
const minLines = 3

// FormatError is the first rule a commit violated.
type FormatError struct {
	SHA  string
	Kind Kind
	// Line is the offending line for title and body length violations.
	Line   string
	Length int
	Limit  int
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case KindTooShort:
		return fmt.Sprintf("%s: commit '%s' should contain at least 3 lines: title, blank line and a sign-off one", e.Kind, e.SHA)
	case KindMissingBlankLine:
		return fmt.Sprintf("%s: for commit '%s', title is divided into multiple lines; keep it one line long and add a blank line between title and description", e.Kind, e.SHA)
	case KindTitleTooLong:
		return fmt.Sprintf("%s: for commit '%s', title exceeds %d chars (%d); please keep it shorter", e.Kind, e.SHA, e.Limit, e.Length)
	case KindBodyLineTooLong:
		return fmt.Sprintf("%s: for commit '%s', message line '%s' exceeds %d chars (%d); keep it shorter or split it in multiple lines", e.Kind, e.SHA, e.Line, e.Limit, e.Length)
	case KindMissingSignoff:
		return fmt.Sprintf("%s: commit '%s' is not signed; please run 'git commit -s --amend' on it", e.Kind, e.SHA)
	default:
		return fmt.Sprintf("%s: commit '%s'", e.Kind, e.SHA)
	}
}

// Check runs the gates in order and stops at the first failure. Commits by an
// exempt author are skipped without error.
func Check(p policy.Policy, c history.Commit) (skipped bool, err error) {
	if p.IsExempt(c.AuthorEmail) {
		return true, nil
	}

	lines := c.Lines
	if len(lines) < minLines {
		return false, &FormatError{SHA: c.SHA, Kind: KindTooShort}
	}
	if lines[1] != "" {
		return false, &FormatError{SHA: c.SHA, Kind: KindMissingBlankLine, Line: lines[1]}
	}

	title := lines[0]
	if n := utf8.RuneCountInString(title); n > p.TitleMaxLength {
		return false, &FormatError{SHA: c.SHA, Kind: KindTitleTooLong, Line: title, Length: n, Limit: p.TitleMaxLength}
	}

	signed := false
	for _, line := range lines[2:] {
		// The trailer ends the message; nothing from here on is length checked.
		if strings.HasPrefix(line, p.SignoffPrefix) {
			signed = true
			break
		}
		if n := utf8.RuneCountInString(line); n > p.BodyLineMaxLength {
			return false, &FormatError{SHA: c.SHA, Kind: KindBodyLineTooLong, Line: line, Length: n, Limit: p.BodyLineMaxLength}
		}
	}
	if !signed {
		return false, &FormatError{SHA: c.SHA, Kind: KindMissingSignoff}
	}
	return false, nil
}
