package report

import (
	"fmt"
	"strings"
)

func Colour(color int, str string) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, str)
}

const (
	red    = 31
	green  = 32
	yellow = 33
)

func verdictColour(v Verdict) int {
	switch v {
	case Successful:
		return green
	case ViolationFound:
		return red
	}
	return yellow
}

// maxCounterexampleLines keeps traces readable in terminal reports; the
// full trace stays in RawOutput.
const maxCounterexampleLines = 40

func (r *Report) String() string {
	var b strings.Builder

	for _, pr := range r.Results {
		header := fmt.Sprintf("[%s] %s: %s (%.2fs)\n",
			pr.PassID, pr.Name, pr.Verdict, pr.Duration.Seconds())
		b.WriteString(Colour(verdictColour(pr.Verdict), header))
		if pr.Note != "" {
			b.WriteString(fmt.Sprintf("  note: %s\n", pr.Note))
		}
		if pr.Counterexample != "" {
			b.WriteString(Colour(yellow, indent(truncateLines(pr.Counterexample, maxCounterexampleLines))))
			b.WriteString("\n")
		}
	}

	for _, name := range r.NotApplicable {
		b.WriteString(fmt.Sprintf("[--] %s: not applicable\n", name))
	}

	violations := 0
	for _, n := range r.Summary.Violations {
		violations += n
	}
	summary := fmt.Sprintf("\n%d passes evaluated, %d violations, %d inconclusive: %s\n",
		r.Summary.Evaluated, violations, r.Summary.Inconclusive, r.Status)
	b.WriteString(Colour(verdictStatusColour(r.Status), summary))
	return b.String()
}

func verdictStatusColour(s Status) int {
	switch s {
	case Clean:
		return green
	case ViolationsPresent:
		return red
	}
	return yellow
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n... (trace truncated)"
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}
