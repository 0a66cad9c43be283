// Package report collects per-pass verdicts into the final audit report.
package report

import "time"

// Verdict is the classified outcome of one verification pass.
type Verdict int

const (
	Successful Verdict = iota
	ViolationFound
	Unknown
	TimedOut
	ProcessError
)

var verdictNames = map[Verdict]string{
	Successful:     "successful",
	ViolationFound: "violation-found",
	Unknown:        "unknown",
	TimedOut:       "timed-out",
	ProcessError:   "process-error",
}

func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return "unknown"
}

// PassResult is the outcome of running one pass spec.
type PassResult struct {
	PassID         string
	Name           string
	Verdict        Verdict
	RawOutput      string
	Counterexample string
	Duration       time.Duration

	// Note carries diagnostics that are not checker output, e.g. a
	// cancellation reason or a spawn failure.
	Note string
}

// Status is the overall outcome of the audit.
type Status int

const (
	Clean Status = iota
	ViolationsPresent
	Inconclusive
)

func (s Status) String() string {
	switch s {
	case Clean:
		return "clean"
	case ViolationsPresent:
		return "violations-present"
	}
	return "inconclusive"
}

// Summary holds derived counts over the evaluated passes.
type Summary struct {
	Evaluated    int
	Violations   map[string]int // pass name -> violation count
	Inconclusive int
}

// Report is the aggregate of one artifact+invocation. Read-only once
// produced.
type Report struct {
	Results       []PassResult
	NotApplicable []string
	Summary       Summary
	Status        Status
}
