// Package executor provides an injectable runner for external CLI tools.
// The audio and media packages depend only on this interface, so their
// logic is unit-testable without invoking real ffmpeg/ffprobe binaries.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrToolNotFound is returned when the requested binary is not installed
// on the host. Callers treat this as a configuration error, distinct from
// a tool that ran and exited non-zero.
var ErrToolNotFound = errors.New("executor: tool not found")

// Result holds the captured output of a completed command.
// Stderr is captured even on success: ffmpeg reports filter output
// (silencedetect markers, duration banners) on stderr.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and waits for completion.
	// A non-zero exit returns the captured Result alongside the error so
	// callers can still inspect stderr.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// CLIRunner is the real Runner backed by os/exec.
type CLIRunner struct{}

// New creates a CLIRunner.
func New() *CLIRunner {
	return &CLIRunner{}
}

// Run executes the command and captures stdout and stderr separately.
func (r *CLIRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	// #nosec G204 - command names and arguments come from trusted internal code
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return res, fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		if ctx.Err() != nil {
			return res, fmt.Errorf("executor: %s cancelled: %w", name, ctx.Err())
		}
		return res, fmt.Errorf("executor: %s failed: %w, stderr: %s", name, err, stderr.String())
	}

	return res, nil
}

// Compile-time check that CLIRunner implements Runner.
var _ Runner = (*CLIRunner)(nil)
