package checker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bmcaudit/internal/solver"
	"bmcaudit/internal/strategy"
)

// fakeRunner serves canned outputs keyed by the last argv element.
type fakeRunner struct {
	outputs map[string]*Output
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, argv []string, _ time.Duration) (*Output, error) {
	key := argv[len(argv)-1]
	f.calls = append(f.calls, strings.Join(argv, " "))
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return &Output{ExitCode: 2, Stderr: "unexpected invocation"}, nil
}

func Test_ListSolvers(t *testing.T) {
	f := &fakeRunner{outputs: map[string]*Output{
		"--list-solvers": {Stdout: "Available solvers:\nz3\nbitwuzla\n"},
	}}
	available, err := ListSolvers(context.Background(), f)
	assert.NoError(t, err)
	assert.True(t, available[solver.Z3])
	assert.True(t, available[solver.Bitwuzla])
	assert.False(t, available[solver.Boolector])
}

func Test_ListSolvers_CheckerFailure(t *testing.T) {
	f := &fakeRunner{outputs: map[string]*Output{
		"--list-solvers": {ExitCode: 1, Stderr: "bad option"},
	}}
	_, err := ListSolvers(context.Background(), f)
	assert.Error(t, err)
}

func Test_ShowLoops(t *testing.T) {
	f := &fakeRunner{outputs: map[string]*Output{
		"--show-loops": {Stdout: "Parsing main.c\n" +
			"Loop main.1: bound 10\n" +
			"Loop main.2: bound unknown\n" +
			"Loop helper.1:\n"},
	}}
	profile, err := ShowLoops(context.Background(), f, "main.c")
	assert.NoError(t, err)
	assert.Equal(t, strategy.Profile{
		{ID: "main.1", BoundKnown: true, Bound: 10},
		{ID: "main.2"},
		{ID: "helper.1"},
	}, profile)
	// discovery runs once and carries the artifact
	assert.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0], "main.c --show-loops")
}

func Test_ShowLoops_NoLoops(t *testing.T) {
	f := &fakeRunner{outputs: map[string]*Output{
		"--show-loops": {Stdout: "Parsing empty.c\nno loops\n"},
	}}
	profile, err := ShowLoops(context.Background(), f, "empty.c")
	assert.NoError(t, err)
	assert.Empty(t, profile)
}

func Test_ShowLoops_DiscoveryError(t *testing.T) {
	f := &fakeRunner{outputs: map[string]*Output{
		"--show-loops": {ExitCode: 1, Stderr: "parse error: broken.c line 3"},
	}}
	_, err := ShowLoops(context.Background(), f, "broken.c")
	assert.Error(t, err)

	var de *DiscoveryError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "broken.c", de.Artifact)
}
