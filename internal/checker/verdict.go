package checker

import (
	"strings"

	"bmcaudit/internal/report"
)

// The checker speaks free-form text, so the text-to-verdict mapping is
// one function with one table of markers, not string matching scattered
// through the pipeline.
const (
	markerSuccessful = "VERIFICATION SUCCESSFUL"
	markerFailed     = "VERIFICATION FAILED"
	markerUnknown    = "VERIFICATION UNKNOWN"

	counterexampleMarker = "[Counterexample]"
	violatedMarker       = "Violated property:"
)

// Classify maps one checker invocation to a closed verdict, plus the
// extracted counterexample trace when one was produced. Output that
// matches none of the recognized markers is a ProcessError; the raw
// output is preserved verbatim upstream for diagnostics.
func Classify(out *Output) (report.Verdict, string) {
	if out.TimedOut {
		return report.TimedOut, ""
	}
	if out.Cancelled {
		return report.Unknown, ""
	}

	text := out.Stdout + "\n" + out.Stderr
	switch {
	case strings.Contains(text, markerFailed):
		return report.ViolationFound, extractCounterexample(out.Stdout)
	case strings.Contains(text, markerSuccessful):
		return report.Successful, ""
	case strings.Contains(text, markerUnknown):
		return report.Unknown, ""
	}
	return report.ProcessError, ""
}

// extractCounterexample cuts the trace block out of a FAILED run: from
// the counterexample marker (or, failing that, the violated-property
// line) through the failure marker.
func extractCounterexample(stdout string) string {
	start := strings.Index(stdout, counterexampleMarker)
	if start < 0 {
		start = strings.Index(stdout, violatedMarker)
	}
	if start < 0 {
		return ""
	}
	trace := stdout[start:]
	if end := strings.Index(trace, markerFailed); end >= 0 {
		trace = trace[:end]
	}
	return strings.TrimSpace(trace)
}
