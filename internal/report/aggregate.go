package report

// Aggregate folds per-pass results into a Report. Pure function, no I/O.
//
// Status is Clean only when every evaluated pass is Successful. Any
// violation wins over everything else; otherwise any unknown, timeout or
// process error makes the whole run inconclusive. Inconclusive is never
// folded into pass or fail. Not-applicable passes count in neither the
// denominator nor the issue totals.
func Aggregate(results []PassResult, notApplicable []string) *Report {
	rep := &Report{
		Results:       results,
		NotApplicable: notApplicable,
		Summary: Summary{
			Evaluated:  len(results),
			Violations: make(map[string]int),
		},
	}

	var violations, inconclusive int
	for _, r := range results {
		switch r.Verdict {
		case ViolationFound:
			violations++
			rep.Summary.Violations[r.Name]++
		case Unknown, TimedOut, ProcessError:
			inconclusive++
		}
	}
	rep.Summary.Inconclusive = inconclusive

	switch {
	case violations > 0:
		rep.Status = ViolationsPresent
	case inconclusive > 0:
		rep.Status = Inconclusive
	default:
		rep.Status = Clean
	}
	return rep
}
