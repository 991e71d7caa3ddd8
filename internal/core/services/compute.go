package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// ComputeRequest is one file's compute step.
type ComputeRequest struct {
	Input    domain.InputFile
	Identity domain.FileIdentity
	Location domain.OutputLocation
	Genome   string
	Force    bool
}

// ComputeInvoker runs the external statistics computation for a file
// unless its target artifact already exists.
type ComputeInvoker struct {
	runner     driven.CommandRunner
	executable string
	script     string
}

// NewComputeInvoker creates an invoker. script is the computation's entry
// point passed as the first argument to executable; it may be empty when
// executable is the computation itself.
func NewComputeInvoker(runner driven.CommandRunner, executable, script string) *ComputeInvoker {
	return &ComputeInvoker{
		runner:     runner,
		executable: executable,
		script:     script,
	}
}

// BuildCommand renders the fixed command template:
//
//	<executable> [script] --bedfile=<path> --fileid=<id> --outputfolder=<dir> --genome=<assembly>
func (c *ComputeInvoker) BuildCommand(req ComputeRequest) domain.Command {
	args := make([]string, 0, 5)
	if c.script != "" {
		args = append(args, c.script)
	}
	args = append(args,
		"--bedfile="+req.Input.Path,
		"--fileid="+req.Identity.String(),
		"--outputfolder="+req.Location.Dir,
		"--genome="+req.Genome,
	)
	return domain.Command{Executable: c.executable, Args: args}
}

// Ensure makes sure the target artifact exists. It reports skipped=true
// when the artifact was already present and Force is unset, in which case
// no command is run. A run counts as successful only if the command exits
// zero and the artifact exists afterwards; anything else returns an error
// wrapping domain.ErrComputeFailed.
func (c *ComputeInvoker) Ensure(ctx context.Context, rc *RunContext, req ComputeRequest) (bool, error) {
	if !req.Force && artifactExists(req.Location.Artifact) {
		rc.Log.Info("target exists, skipping computation", "target", req.Location.Artifact)
		return true, nil
	}

	if c.script != "" {
		if _, err := os.Stat(c.script); err != nil {
			return false, fmt.Errorf("%w: computation entry point %q: %w", domain.ErrInvalidInput, c.script, err)
		}
	}

	if err := os.MkdirAll(req.Location.Dir, checkpointMode); err != nil {
		return false, fmt.Errorf("creating output folder: %w", err)
	}

	// A forced rerun must not be satisfied by the previous artifact.
	if req.Force {
		if err := os.Remove(req.Location.Artifact); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("removing stale artifact: %w", err)
		}
	}

	cmd := c.BuildCommand(req)
	rc.Log.Info("running computation", "command", cmd.String())

	res, err := c.runner.Run(ctx, cmd, rc.Output())
	if err != nil {
		return false, &domain.ComputeError{Command: cmd.String(), ExitCode: -1, Err: err}
	}
	if !res.Success() {
		return false, &domain.ComputeError{Command: cmd.String(), ExitCode: res.ExitCode}
	}
	if !artifactExists(req.Location.Artifact) {
		return false, &domain.ComputeError{Command: cmd.String(), Missing: true}
	}

	rc.Log.Info("computation finished", "target", req.Location.Artifact)
	return false, nil
}

func artifactExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
