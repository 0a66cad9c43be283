// Package pass expands a check selection into self-contained pass specs.
package pass

import (
	"fmt"
	"sort"
	"strings"
)

// Check is an optional property family the user can enable. Default
// properties (bounds, null-deref, div-by-zero, assertions) are not a
// Check: they are always verified and can only be disabled through the
// checker's explicit --no-default-checks flag, never by omission here.
type Check int

const (
	Memory Check = iota
	Overflow
	Concurrency
	UBShift
)

var checkNames = map[Check]string{
	Memory:      "memory",
	Overflow:    "overflow",
	Concurrency: "concurrency",
	UBShift:     "ub-shift",
}

func (c Check) String() string {
	return checkNames[c]
}

// Set is a selection of optional checks.
type Set map[Check]bool

func NewSet(checks ...Check) Set {
	s := make(Set, len(checks))
	for _, c := range checks {
		s[c] = true
	}
	return s
}

// AllChecks enables every optional check.
func AllChecks() Set {
	return NewSet(Memory, Overflow, Concurrency, UBShift)
}

func (s Set) Has(c Check) bool {
	return s[c]
}

func (s Set) String() string {
	var names []string
	for c, on := range s {
		if on {
			names = append(names, c.String())
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// ParseSet parses a comma-separated check list, or "all". An empty
// string yields the empty set (the default pass still runs).
func ParseSet(spec string) (Set, error) {
	if spec == "all" {
		return AllChecks(), nil
	}
	s := make(Set)
	if spec == "" {
		return s, nil
	}
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		found := false
		for c, n := range checkNames {
			if n == name {
				s[c] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown check %q (want memory, overflow, concurrency, ub-shift or all)", name)
		}
	}
	return s, nil
}
