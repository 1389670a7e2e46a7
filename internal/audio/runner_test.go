package audio

import (
	"context"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
)

// fakeRunner is a scripted executor.Runner returning canned results.
// Each invocation is recorded so tests can inspect the argument lists.
type fakeRunner struct {
	script func(name string, args []string) (executor.Result, error)
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (executor.Result, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	if f.script == nil {
		return executor.Result{}, nil
	}
	return f.script(name, args)
}

// argValue returns the argument following the given flag in a recorded
// call, or "" if absent.
func argValue(call []string, flag string) string {
	for i, a := range call {
		if a == flag && i+1 < len(call) {
			return call[i+1]
		}
	}
	return ""
}

// fixedProber reports a constant duration.
type fixedProber struct {
	duration float64
	err      error
}

func (p *fixedProber) Duration(_ context.Context, _ string) (float64, error) {
	return p.duration, p.err
}
