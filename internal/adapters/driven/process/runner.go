// Package process runs external commands on the local machine.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed on cancellation.
const waitDelay = 5 * time.Second

// Runner executes commands directly, without a shell.
type Runner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// NewRunner creates a runner working in dir.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir}
}

// Run starts cmd, copies its stdout and stderr to out and waits for it.
// A non-zero exit is reported in the result, not as an error.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, out io.Writer) (domain.ExecResult, error) {
	if cmd.Executable == "" {
		return domain.ExecResult{}, fmt.Errorf("%w: empty executable", domain.ErrInvalidInput)
	}
	if out == nil {
		out = io.Discard
	}

	c := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	c.Dir = r.Dir
	c.Stdout = out
	c.Stderr = out
	c.WaitDelay = waitDelay

	err := c.Run()
	if err == nil {
		return domain.ExecResult{ExitCode: 0}, nil
	}

	if ctx.Err() != nil {
		return domain.ExecResult{}, fmt.Errorf("command interrupted: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return domain.ExecResult{ExitCode: exitErr.ExitCode()}, nil
	}
	return domain.ExecResult{}, fmt.Errorf("starting %s: %w", cmd.Executable, err)
}
