// Package validator runs the commit format checks over a pull request's commits.
package validator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bartekus/commitfmt/internal/history"
	"github.com/bartekus/commitfmt/internal/policy"
	"github.com/bartekus/commitfmt/internal/report"
	"github.com/bartekus/commitfmt/internal/rules"
	"github.com/bartekus/commitfmt/internal/vcs"
)

// Options configures a Validator.
type Options struct {
	Range  history.Range
	Policy policy.Policy
	// CollectAll checks every commit and returns all violations instead of
	// stopping at the first one.
	CollectAll bool
	// Out receives the diagnostic listing: commit ids, then the decomposed
	// message of each checked commit. Nil discards it.
	Out io.Writer
	Log *zap.SugaredLogger
}

// Validator checks every commit in a range against a policy.
type Validator struct {
	resolver  *history.Resolver
	inspector *history.Inspector
	opts      Options
}

func New(repo vcs.Repository, opts Options) *Validator {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	return &Validator{
		resolver:  history.NewResolver(repo, opts.Range, opts.Log),
		inspector: history.NewInspector(repo),
		opts:      opts,
	}
}

// Run resolves the range and checks each commit in order.
//
// The returned report reflects every commit checked so far, even on error.
// Violations come back as *rules.FormatError; with CollectAll they are joined
// and each remains reachable through errors.As.
func (v *Validator) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(v.opts.Range.String())

	shas, err := v.resolver.Resolve(ctx)
	if err != nil {
		rep.Status = report.StatusFail
		return rep, err
	}
	for _, sha := range shas {
		_, _ = fmt.Fprintln(v.opts.Out, sha)
	}

	var violations []error
	for _, sha := range shas {
		c, err := v.inspector.Inspect(ctx, sha)
		if err != nil {
			rep.Status = report.StatusFail
			return rep, err
		}

		res, verr := v.check(c)
		rep.Add(res)
		if verr == nil {
			continue
		}

		violations = append(violations, verr)
		if !v.opts.CollectAll {
			break
		}
	}

	if len(violations) > 0 {
		v.opts.Log.Warnw("commit format check failed", "range", rep.Range, "failed", rep.Failed)
		return rep, errors.Join(violations...)
	}
	v.opts.Log.Infow("commit format check passed", "range", rep.Range, "commits", len(rep.Commits))
	return rep, nil
}

func (v *Validator) check(c history.Commit) (report.CommitResult, error) {
	res := report.CommitResult{SHA: c.SHA, Title: c.Title()}

	skipped, err := rules.Check(v.opts.Policy, c)
	if skipped {
		v.opts.Log.Debugw("skipping exempt author", "sha", c.SHA, "author", c.AuthorEmail)
		res.Status = report.StatusSkip
		res.Note = "exempt author " + c.AuthorEmail
		return res, nil
	}

	_, _ = fmt.Fprintf(v.opts.Out, "%q\n", c.Lines)

	if err != nil {
		res.Status = report.StatusFail
		res.Note = err.Error()
		var fe *rules.FormatError
		if errors.As(err, &fe) {
			res.Rule = string(fe.Kind)
		}
		v.opts.Log.Debugw("commit violates policy", "sha", c.SHA, "rule", res.Rule)
		return res, err
	}

	res.Status = report.StatusPass
	return res, nil
}
