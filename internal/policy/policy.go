// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitfmt - Commitfmt is a standalone commit message policy checker for pull requests.
It validates commit titles, body line lengths, the title/body separator and sign-off trailers, and reports every violation in CI logs.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package policy defines the commit message formatting policy and loads overrides from YAML.
package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitleMaxLength    = 60
	DefaultBodyLineMaxLength = 75
	DefaultSignoffPrefix     = "Signed-off-by: "
	DefaultExemptAuthor      = "dependabot"
)

// Policy is the rule set applied to every commit in the range.
// It is treated as immutable once loaded.
type Policy struct {
	TitleMaxLength    int      `yaml:"title_max_length"`
	BodyLineMaxLength int      `yaml:"body_line_max_length"`
	ExemptAuthors     []string `yaml:"exempt_authors"`
	SignoffPrefix     string   `yaml:"signoff_prefix"`
}

// Default returns the built-in 60/75 policy with the dependabot exemption.
func Default() Policy {
	return Policy{
		TitleMaxLength:    DefaultTitleMaxLength,
		BodyLineMaxLength: DefaultBodyLineMaxLength,
		ExemptAuthors:     []string{DefaultExemptAuthor},
		SignoffPrefix:     DefaultSignoffPrefix,
	}
}

// Load reads a YAML policy file and applies it on top of Default.
// A missing file is only an error when required is set.
func Load(path string, required bool) (Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: policy path comes from the operator
	if err != nil {
		if os.IsNotExist(err) && !required {
			return Default(), nil
		}
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return p, nil
}

// Decode parses a YAML policy document. Unknown keys are rejected so a typo
// does not silently fall back to a default limit.
func Decode(r io.Reader) (Policy, error) {
	p := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, err
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	if p.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive, got %d", p.TitleMaxLength)
	}
	if p.BodyLineMaxLength <= 0 {
		return fmt.Errorf("body_line_max_length must be positive, got %d", p.BodyLineMaxLength)
	}
	if p.SignoffPrefix == "" {
		return errors.New("signoff_prefix must not be empty")
	}
	for i, a := range p.ExemptAuthors {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("exempt_authors[%d] must not be empty", i)
		}
	}
	return nil
}

// IsExempt reports whether commits by this author skip every check.
func (p Policy) IsExempt(email string) bool {
	for _, a := range p.ExemptAuthors {
		if strings.Contains(email, a) {
			return true
		}
	}
	return false
}

// Marshal renders the policy as YAML.
func (p Policy) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
