// Package runner executes external processes for the CLI.
package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/courselab/lessonctl/internal/domain"
)

// ExecRunner runs commands through os/exec. It implements
// domain.ProcessRunner.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command in dir and captures combined output. A nonzero
// exit lands in the result's ExitCode; the error return is reserved for
// the process failing to start.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (domain.ProcessResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	result := domain.ProcessResult{Output: string(out)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// RunInteractive executes the command in dir with the caller's terminal
// attached, so the child can prompt and print directly.
func (r *ExecRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
