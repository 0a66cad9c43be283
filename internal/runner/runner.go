// Package runner executes pass specs against the external checker.
package runner

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"bmcaudit/internal/checker"
	"bmcaudit/internal/pass"
	"bmcaudit/internal/report"
)

// Mode selects how a batch of passes is scheduled.
type Mode int

const (
	Sequential Mode = iota
	Concurrent
)

// ParseMode maps the CLI/config spelling to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "seq", "":
		return Sequential, nil
	case "par":
		return Concurrent, nil
	}
	return Sequential, fmt.Errorf("unknown mode %q (want seq or par)", s)
}

// Runner drives one batch of passes against one artifact.
type Runner struct {
	Checker  checker.Runner
	Artifact string
}

// Run executes every spec and returns one result per spec, in spec
// order regardless of completion order. In Concurrent mode each pass is
// an independent checker process with its own timeout clock started at
// dispatch. Cancellation of ctx terminates in-flight passes; completed
// results are still returned, so a partial report stays valid.
func (r *Runner) Run(ctx context.Context, specs []pass.Spec, mode Mode) []report.PassResult {
	results := make([]report.PassResult, len(specs))

	if mode == Concurrent {
		// Results land in their own slot, so completion order never
		// reorders the report.
		var g errgroup.Group
		for i := range specs {
			i := i
			g.Go(func() error {
				results[i] = r.runOne(ctx, specs[i])
				return nil
			})
		}
		_ = g.Wait()
		return results
	}

	for i := range specs {
		results[i] = r.runOne(ctx, specs[i])
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, spec pass.Spec) report.PassResult {
	result := report.PassResult{PassID: spec.ID, Name: spec.Name}

	if ctx.Err() != nil {
		result.Verdict = report.Unknown
		result.Note = "aborted before dispatch"
		return result
	}

	log.Infof("pass %s: dispatching (%s, timeout %s)", spec.ID, spec.Unwind, spec.Timeout)
	out, err := r.Checker.Run(ctx, spec.Argv(r.Artifact), spec.Timeout)
	if err != nil {
		log.Errorf("pass %s: %v", spec.ID, err)
		result.Verdict = report.ProcessError
		result.Note = err.Error()
		return result
	}

	result.Duration = out.Duration
	result.RawOutput = out.Stdout + out.Stderr
	result.Verdict, result.Counterexample = checker.Classify(out)
	if out.Cancelled {
		result.Note = "aborted while running"
	}
	log.Infof("pass %s: %s in %.2fs", spec.ID, result.Verdict, out.Duration.Seconds())
	return result
}
