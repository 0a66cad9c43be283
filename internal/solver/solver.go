// Package solver picks the SMT back-end the checker should run with.
package solver

import (
	"strings"

	"github.com/pkg/errors"
)

// Choice identifies one of the checker's SMT back-ends.
type Choice int

const (
	None Choice = iota
	Boolector
	Bitwuzla
	Z3
)

// priority is strict: boolector beats bitwuzla beats z3.
var priority = []Choice{Boolector, Bitwuzla, Z3}

var names = map[Choice]string{
	None:      "none",
	Boolector: "boolector",
	Bitwuzla:  "bitwuzla",
	Z3:        "z3",
}

func (c Choice) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "none"
}

// Flag returns the checker command-line flag selecting this back-end.
func (c Choice) Flag() string {
	switch c {
	case Boolector:
		return "--boolector"
	case Bitwuzla:
		return "--bitwuzla"
	case Z3:
		return "--z3"
	}
	return ""
}

// FromName maps a solver name as printed by the checker to a Choice.
// Unrecognized names map to None.
func FromName(name string) Choice {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolector":
		return Boolector
	case "bitwuzla":
		return Bitwuzla
	case "z3":
		return Z3
	}
	return None
}

var ErrNoSolverAvailable = errors.New("no supported SMT solver available (need boolector, bitwuzla or z3)")

// Select returns the highest-priority back-end present in available.
// An empty or all-unrecognized set is fatal for the whole pipeline.
func Select(available map[Choice]bool) (Choice, error) {
	for _, c := range priority {
		if available[c] {
			return c, nil
		}
	}
	return None, ErrNoSolverAvailable
}
