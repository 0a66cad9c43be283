// Package checker is the process boundary to the external bounded model
// checker. Everything the pipeline knows about the checker — how to
// spawn it, how to read its text output, how to probe its solvers and
// loops — lives here.
package checker

import (
	"bytes"
	"context"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// Output is the captured outcome of one checker invocation. ExitCode is
// meaningful only when TimedOut and Cancelled are both false.
type Output struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Duration  time.Duration
	TimedOut  bool
	Cancelled bool
}

// Runner spawns the checker. The production implementation execs a
// binary; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) (*Output, error)
}

// gracePeriod is the wait between SIGINT and SIGKILL when tearing a
// checker process group down.
const gracePeriod = 2 * time.Second

// ExecRunner runs the checker binary as a child process in its own
// process group, so a timeout or cancellation reclaims the checker and
// any solver children it forked.
type ExecRunner struct {
	Bin string
}

func NewExecRunner(bin string) *ExecRunner {
	return &ExecRunner{Bin: bin}
}

// Run spawns one checker invocation. An error is returned only when the
// process could not be started; a nonzero exit, timeout or cancellation
// is reported through Output.
func (r *ExecRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (*Output, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(r.Bin, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s", r.Bin)
	}
	pgid := cmd.Process.Pid

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- cmd.Wait()
	}()

	out := &Output{}
	var runErr error
	select {
	case runErr = <-waitDone:
	case <-timeoutCtx.Done():
		if ctx.Err() != nil {
			out.Cancelled = true
		} else {
			out.TimedOut = true
		}
		killProcessGroup(pgid)
		runErr = <-waitDone
	}

	out.Duration = time.Since(start)
	out.Stdout = stdout.String()
	out.Stderr = stderr.String()
	out.ExitCode = exitCode(runErr)
	return out, nil
}

func exitCode(runErr error) int {
	if runErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// killProcessGroup interrupts the group, waits out the grace period,
// then kills whatever is left.
func killProcessGroup(pgid int) {
	_ = syscall.Kill(-pgid, syscall.SIGINT)
	time.Sleep(gracePeriod)
	_ = syscall.Kill(-pgid, syscall.SIGKILL)
}
