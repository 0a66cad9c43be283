package checker

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"bmcaudit/internal/solver"
	"bmcaudit/internal/strategy"
)

// probeTimeout bounds the cheap discovery calls; they parse, they don't
// verify.
const probeTimeout = 60 * time.Second

// DiscoveryError means the checker could not establish the artifact's
// loop structure. Fatal for the whole plan; never retried.
type DiscoveryError struct {
	Artifact string
	Output   string
	Err      error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("loop discovery failed for %s: %v", e.Artifact, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ListSolvers probes which SMT back-ends the checker was built with.
func ListSolvers(ctx context.Context, r Runner) (map[solver.Choice]bool, error) {
	out, err := r.Run(ctx, []string{"--list-solvers"}, probeTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "list solvers")
	}
	if out.TimedOut || out.Cancelled || out.ExitCode != 0 {
		return nil, errors.Errorf("list solvers: checker exited %d: %s", out.ExitCode, firstLine(out.Stderr))
	}

	available := make(map[solver.Choice]bool)
	for _, field := range strings.Fields(out.Stdout) {
		if c := solver.FromName(field); c != solver.None {
			available[c] = true
		}
	}
	return available, nil
}

// Loop listings come back as lines like
//
//	Loop main.1: bound 10
//	Loop main.2: bound unknown
//
// A loop line with no bound clause counts as unknown.
var loopLineRE = regexp.MustCompile(`^\s*Loop\s+(\S+?):?(?:\s+bound\s+(\d+|unknown))?\s*$`)

// ShowLoops runs loop discovery on the artifact. Called exactly once
// per audit invocation; the profile is shared across every pass.
func ShowLoops(ctx context.Context, r Runner, artifact string) (strategy.Profile, error) {
	out, err := r.Run(ctx, []string{artifact, "--show-loops"}, probeTimeout)
	if err != nil {
		return nil, &DiscoveryError{Artifact: artifact, Err: err}
	}
	if out.TimedOut || out.Cancelled || out.ExitCode != 0 {
		return nil, &DiscoveryError{
			Artifact: artifact,
			Output:   out.Stdout + out.Stderr,
			Err:      errors.Errorf("checker exited %d: %s", out.ExitCode, firstLine(out.Stderr)),
		}
	}

	var profile strategy.Profile
	for _, line := range strings.Split(out.Stdout, "\n") {
		m := loopLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		loop := strategy.Loop{ID: m[1]}
		if m[2] != "" && m[2] != "unknown" {
			bound, convErr := strconv.Atoi(m[2])
			if convErr != nil {
				return nil, &DiscoveryError{Artifact: artifact, Output: line, Err: convErr}
			}
			loop.BoundKnown = true
			loop.Bound = bound
		}
		profile = append(profile, loop)
	}
	return profile, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
