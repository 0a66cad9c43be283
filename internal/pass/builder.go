package pass

import (
	"fmt"
	"time"

	"bmcaudit/internal/solver"
	"bmcaudit/internal/strategy"
)

// Spec is one fully self-contained checker invocation. It carries its
// own copy of solver, unwind and timeout so passes share no mutable
// state; re-planning builds a new Spec rather than mutating one.
type Spec struct {
	ID      string
	Name    string
	Solver  solver.Choice
	Unwind  strategy.Unwind
	Flags   []string
	Timeout time.Duration
	Extra   []string
}

// Argv renders the checker command line for this spec, per the
// invocation contract: artifact, solver flag, unwind flags, check
// flags, extras, timeout.
func (s Spec) Argv(artifact string) []string {
	argv := []string{artifact}
	if f := s.Solver.Flag(); f != "" {
		argv = append(argv, f)
	}
	argv = append(argv, s.Unwind.Flags()...)
	argv = append(argv, s.Flags...)
	argv = append(argv, s.Extra...)
	argv = append(argv, "--timeout", fmt.Sprintf("%ds", int(s.Timeout.Seconds())))
	return argv
}

// template is one fixed pass kind. The order of templates fixes the
// report layout; execution order carries no meaning.
type template struct {
	id           string
	name         string
	check        Check
	always       bool
	needsThreads bool
	flags        []string
}

var templates = []template{
	{id: "default", name: "Default properties", always: true},
	{id: "memory", name: "Memory safety", check: Memory,
		flags: []string{"--memory-leak-check"}},
	{id: "overflow", name: "Integer safety", check: Overflow,
		flags: []string{"--overflow-check", "--unsigned-overflow-check"}},
	{id: "ub-shift", name: "Shift UB", check: UBShift,
		flags: []string{"--ub-shift-check"}},
	{id: "concurrency", name: "Concurrency", check: Concurrency, needsThreads: true,
		flags: []string{"--deadlock-check", "--data-races-check", "--context-bound", "2"}},
}

// BuildResult separates runnable specs from requested-but-inapplicable
// passes. The latter must surface in the report; silently dropping a
// requested pass is not allowed.
type BuildResult struct {
	Specs         []Spec
	NotApplicable []string
}

// Build expands the check selection into one spec per applicable pass
// template. A concurrency request against an artifact with no threading
// lands in NotApplicable.
func Build(set Set, sol solver.Choice, unwind strategy.Unwind, timeout time.Duration, threadingDetected bool) BuildResult {
	var result BuildResult
	for _, t := range templates {
		if !t.always && !set.Has(t.check) {
			continue
		}
		if t.needsThreads && !threadingDetected {
			result.NotApplicable = append(result.NotApplicable, t.name)
			continue
		}
		result.Specs = append(result.Specs, Spec{
			ID:      t.id,
			Name:    t.name,
			Solver:  sol,
			Unwind:  unwind,
			Flags:   append([]string(nil), t.flags...),
			Timeout: timeout,
		})
	}
	return result
}
