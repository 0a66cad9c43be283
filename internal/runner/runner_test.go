package runner

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bmcaudit/internal/checker"
	"bmcaudit/internal/pass"
	"bmcaudit/internal/report"
	"bmcaudit/internal/solver"
	"bmcaudit/internal/strategy"
)

// fakeChecker simulates checker processes with scripted outputs and
// per-invocation delays, so completion order can be forced.
type fakeChecker struct {
	mu      sync.Mutex
	outputs map[string]*checker.Output // keyed by pass flag marker
	delays  map[string]time.Duration
}

func (f *fakeChecker) Run(ctx context.Context, argv []string, timeout time.Duration) (*checker.Output, error) {
	key := f.key(argv)
	f.mu.Lock()
	out := f.outputs[key]
	delay := f.delays[key]
	f.mu.Unlock()

	wait := delay
	if wait > timeout {
		wait = timeout
	}
	select {
	case <-time.After(wait):
	case <-ctx.Done():
		return &checker.Output{Cancelled: true}, nil
	}
	if delay > timeout {
		return &checker.Output{TimedOut: true, Duration: timeout}, nil
	}
	if out == nil {
		out = &checker.Output{Stdout: "VERIFICATION SUCCESSFUL"}
	}
	return out, nil
}

func (f *fakeChecker) key(argv []string) string {
	joined := strings.Join(argv, " ")
	switch {
	case strings.Contains(joined, "--memory-leak-check"):
		return "memory"
	case strings.Contains(joined, "--overflow-check"):
		return "overflow"
	case strings.Contains(joined, "--ub-shift-check"):
		return "ub-shift"
	case strings.Contains(joined, "--deadlock-check"):
		return "concurrency"
	}
	return "default"
}

func specs(ids ...string) []pass.Spec {
	flagsFor := map[string][]string{
		"default":  nil,
		"memory":   {"--memory-leak-check"},
		"overflow": {"--overflow-check", "--unsigned-overflow-check"},
		"ub-shift": {"--ub-shift-check"},
	}
	out := make([]pass.Spec, len(ids))
	for i, id := range ids {
		out[i] = pass.Spec{
			ID:      id,
			Name:    id,
			Solver:  solver.Z3,
			Unwind:  strategy.NoUnwind{},
			Flags:   flagsFor[id],
			Timeout: 5 * time.Second,
		}
	}
	return out
}

func Test_Run_Concurrent_OrderStable(t *testing.T) {
	// The fastest pass finishes last in submission order; results must
	// still come back in spec order.
	f := &fakeChecker{
		outputs: map[string]*checker.Output{
			"default":  {Stdout: "VERIFICATION SUCCESSFUL"},
			"memory":   {Stdout: "VERIFICATION FAILED"},
			"overflow": {Stdout: "VERIFICATION UNKNOWN"},
		},
		delays: map[string]time.Duration{
			"default":  150 * time.Millisecond,
			"memory":   50 * time.Millisecond,
			"overflow": 100 * time.Millisecond,
		},
	}
	r := &Runner{Checker: f, Artifact: "main.c"}
	results := r.Run(context.Background(), specs("default", "memory", "overflow"), Concurrent)

	assert.Equal(t, []string{"default", "memory", "overflow"},
		[]string{results[0].PassID, results[1].PassID, results[2].PassID})
	assert.Equal(t, report.Successful, results[0].Verdict)
	assert.Equal(t, report.ViolationFound, results[1].Verdict)
	assert.Equal(t, report.Unknown, results[2].Verdict)
}

func Test_Run_Sequential(t *testing.T) {
	f := &fakeChecker{
		outputs: map[string]*checker.Output{
			"default": {Stdout: "VERIFICATION SUCCESSFUL"},
			"memory":  {Stdout: "VERIFICATION SUCCESSFUL"},
		},
	}
	r := &Runner{Checker: f, Artifact: "main.c"}
	results := r.Run(context.Background(), specs("default", "memory"), Sequential)
	assert.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, report.Successful, res.Verdict)
	}
}

func Test_Run_TimeoutYieldsSingleTimedOut(t *testing.T) {
	f := &fakeChecker{
		outputs: map[string]*checker.Output{
			"default": {Stdout: "VERIFICATION SUCCESSFUL"},
		},
		delays: map[string]time.Duration{
			"memory": 30 * time.Second, // exceeds the 5s spec timeout
		},
	}
	s := specs("default", "memory")
	s[1].Timeout = 50 * time.Millisecond
	r := &Runner{Checker: f, Artifact: "main.c"}
	results := r.Run(context.Background(), s, Concurrent)

	assert.Len(t, results, 2)
	assert.Equal(t, report.Successful, results[0].Verdict)
	assert.Equal(t, report.TimedOut, results[1].Verdict)
}

func Test_Run_CancelKeepsCompleted(t *testing.T) {
	f := &fakeChecker{
		outputs: map[string]*checker.Output{
			"default": {Stdout: "VERIFICATION SUCCESSFUL"},
		},
		delays: map[string]time.Duration{
			"memory": 30 * time.Second,
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()
	r := &Runner{Checker: f, Artifact: "main.c"}
	results := r.Run(ctx, specs("default", "memory"), Concurrent)

	// one result per spec either way; the finished pass keeps its
	// verdict, the interrupted one is marked, not lost
	assert.Len(t, results, 2)
	assert.Equal(t, report.Successful, results[0].Verdict)
	assert.Equal(t, report.Unknown, results[1].Verdict)
	assert.NotEmpty(t, results[1].Note)
}

func Test_Run_ProcessError(t *testing.T) {
	f := &fakeChecker{
		outputs: map[string]*checker.Output{
			"default": {Stdout: "segfault", ExitCode: 139},
		},
	}
	r := &Runner{Checker: f, Artifact: "main.c"}
	results := r.Run(context.Background(), specs("default"), Sequential)
	assert.Equal(t, report.ProcessError, results[0].Verdict)
	// raw output preserved verbatim for diagnostics
	assert.Contains(t, results[0].RawOutput, "segfault")
}

func Test_ParseMode(t *testing.T) {
	m, err := ParseMode("par")
	assert.NoError(t, err)
	assert.Equal(t, Concurrent, m)

	m, err = ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, Sequential, m)

	_, err = ParseMode("fast")
	assert.Error(t, err)
}
