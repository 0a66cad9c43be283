// Package audit runs the whole verification pipeline for one artifact.
package audit

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"bmcaudit/internal/checker"
	"bmcaudit/internal/pass"
	"bmcaudit/internal/report"
	"bmcaudit/internal/runner"
	"bmcaudit/internal/solver"
	"bmcaudit/internal/strategy"
)

type Auditor struct {
	Runner  checker.Runner
	Timeout time.Duration
	Checks  pass.Set
	Intent  strategy.Intent
	Mode    runner.Mode

	// ThreadingDetected gates the concurrency pass. The caller decides
	// (flag or a prior scan); the pipeline only records the distinction.
	ThreadingDetected bool

	// CPUCount defaults to runtime.NumCPU when zero. Feeds the
	// parallel k-induction decision.
	CPUCount int
}

// Run executes the pipeline: probe solvers, profile loops, plan, build,
// run, optionally run the fallback round, aggregate.
//
// A fatal precondition failure (no solver, undiscoverable loop
// structure) returns an error and no report; nothing has been verified
// at that point. Per-pass failures never abort siblings and come back
// inside the report.
func (a *Auditor) Run(ctx context.Context, artifact string) (*report.Report, error) {
	startTime := time.Now()

	available, err := checker.ListSolvers(ctx, a.Runner)
	if err != nil {
		return nil, err
	}
	sol, err := solver.Select(available)
	if err != nil {
		return nil, err
	}
	log.Infof("selected solver %s", sol)

	profile, err := checker.ShowLoops(ctx, a.Runner, artifact)
	if err != nil {
		return nil, err
	}
	log.Infof("discovered %d loops in %s", len(profile), artifact)

	primary, fallback := strategy.Plan(profile, a.cpus(), a.Intent)
	log.Infof("planned strategy %s (fallback %s)", primary, describe(fallback))

	built := pass.Build(a.Checks, sol, primary, a.Timeout, a.ThreadingDetected)
	passRunner := &runner.Runner{Checker: a.Runner, Artifact: artifact}
	results := passRunner.Run(ctx, built.Specs, a.Mode)

	// Fallback round: only after every primary verdict is terminal,
	// only when nothing was found and something stayed inconclusive,
	// and never on an already-cancelled context. Each fallback pass is
	// a fresh process with a fresh spec.
	if fallback != nil && needsFallback(results) && ctx.Err() == nil {
		log.Infof("primary strategy inconclusive, falling back to %s", fallback)
		fb := pass.Build(a.Checks, sol, fallback, a.Timeout, a.ThreadingDetected)
		for i := range fb.Specs {
			fb.Specs[i].ID = "fb-" + fb.Specs[i].ID
		}
		results = append(results, passRunner.Run(ctx, fb.Specs, a.Mode)...)
	}

	rep := report.Aggregate(results, built.NotApplicable)
	log.Infof("audit finished in %.2fs: %s", time.Since(startTime).Seconds(), rep.Status)
	return rep, nil
}

func (a *Auditor) cpus() int {
	if a.CPUCount > 0 {
		return a.CPUCount
	}
	return runtime.NumCPU()
}

// needsFallback reports whether the primary round ended inconclusive: a
// violation or a clean sweep both end planning immediately.
func needsFallback(results []report.PassResult) bool {
	inconclusive := false
	for _, r := range results {
		switch r.Verdict {
		case report.ViolationFound:
			return false
		case report.Unknown, report.TimedOut:
			inconclusive = true
		}
	}
	return inconclusive
}

func describe(u strategy.Unwind) string {
	if u == nil {
		return "none"
	}
	return u.String()
}

// Probe is the solvers-subcommand entry: list back-ends and report
// which one selection would pick.
func Probe(ctx context.Context, r checker.Runner) (map[solver.Choice]bool, solver.Choice, error) {
	available, err := checker.ListSolvers(ctx, r)
	if err != nil {
		return nil, solver.None, err
	}
	chosen, err := solver.Select(available)
	if err != nil && !errors.Is(err, solver.ErrNoSolverAvailable) {
		return nil, solver.None, err
	}
	return available, chosen, err
}
