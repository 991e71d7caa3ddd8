package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// CommandRunner executes one external command synchronously.
// It must not interpret the command through a shell.
type CommandRunner interface {
	// Run blocks until the process exits and reports its exit code.
	// Process output is copied to out. A non-nil error means the process
	// could not be started or waited for; a non-zero exit is not an error.
	Run(ctx context.Context, cmd domain.Command, out io.Writer) (domain.ExecResult, error)
}
