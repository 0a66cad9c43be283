package strategy

import "fmt"

// Intent is what the user wants out of the run.
type Intent int

const (
	BugHunting Intent = iota
	ProveCorrectness
)

func (i Intent) String() string {
	if i == ProveCorrectness {
		return "prove"
	}
	return "bug-hunting"
}

// ParseIntent maps the CLI/config spelling to an Intent.
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "bug-hunting", "":
		return BugHunting, nil
	case "prove":
		return ProveCorrectness, nil
	}
	return BugHunting, fmt.Errorf("unknown intent %q (want bug-hunting or prove)", s)
}

// parallelCPUThreshold: parallel k-induction forks base, forward and
// inductive steps as separate checker processes, worth it only with
// spare cores.
const parallelCPUThreshold = 4

// Plan picks the primary unwind strategy and, for correctness proofs, a
// BMC fallback consumed only after the primary round ends Unknown or
// timed out.
func Plan(profile Profile, cpuCount int, intent Intent) (primary, fallback Unwind) {
	bmc := planBMC(profile)
	if intent == ProveCorrectness {
		return KInduction{Parallel: cpuCount > parallelCPUThreshold}, bmc
	}
	return bmc, nil
}

func planBMC(profile Profile) Unwind {
	if len(profile) == 0 {
		return NoUnwind{}
	}
	for _, l := range profile {
		// One unknown bound spoils the set: a partial unwindset would
		// silently under-verify the unbounded loops.
		if !l.BoundKnown {
			return Incremental{}
		}
	}
	return UnwindSet{Loops: append(Profile(nil), profile...)}
}
