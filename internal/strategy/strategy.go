// Package strategy decides how loops are bounded for a verification pass.
package strategy

import (
	"fmt"
	"strings"
)

// Loop is one loop discovered in the artifact.
type Loop struct {
	ID         string
	BoundKnown bool
	Bound      int
}

// Profile is the loop structure of one artifact version, in discovery order.
type Profile []Loop

// Unwind is one way of bounding loop exploration. Exactly one is active
// per pass.
type Unwind interface {
	Flags() []string
	String() string
}

// NoUnwind runs plain BMC with no loop bounding flags. Used when the
// artifact has no loops at all.
type NoUnwind struct{}

func (NoUnwind) Flags() []string { return nil }
func (NoUnwind) String() string  { return "no-unwind" }

// UnwindSet bounds every loop explicitly. Only valid when every loop in
// the profile has a known bound.
type UnwindSet struct {
	Loops []Loop
}

func (u UnwindSet) Flags() []string {
	parts := make([]string, len(u.Loops))
	for i, l := range u.Loops {
		parts[i] = fmt.Sprintf("%s:%d", l.ID, l.Bound)
	}
	return []string{"--unwindset", strings.Join(parts, ",")}
}

func (u UnwindSet) String() string {
	return "unwindset(" + u.Flags()[1] + ")"
}

// Incremental deepens the unwind bound until a verdict or the resource
// limit is hit.
type Incremental struct{}

func (Incremental) Flags() []string { return []string{"--incremental-bmc"} }
func (Incremental) String() string  { return "incremental-bmc" }

// KInduction attempts an inductive proof over all depths.
type KInduction struct {
	Parallel bool
}

func (k KInduction) Flags() []string {
	if k.Parallel {
		return []string{"--k-induction-parallel"}
	}
	return []string{"--k-induction"}
}

func (k KInduction) String() string {
	if k.Parallel {
		return "k-induction-parallel"
	}
	return "k-induction"
}
