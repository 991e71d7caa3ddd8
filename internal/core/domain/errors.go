package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// All except ErrMissingSearchKey are fatal for a run.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingArtifact indicates the target JSON is absent or malformed
	// after the compute step reported success.
	ErrMissingArtifact = errors.New("missing or malformed artifact")

	// ErrComputeFailed indicates the external computation exited non-zero
	// or did not produce its target artifact.
	ErrComputeFailed = errors.New("external computation failed")

	// ErrSideFileParse indicates the sample metadata file could not be parsed.
	ErrSideFileParse = errors.New("sample metadata parse error")

	// ErrMissingSearchKey indicates a search term is absent from the sample
	// metadata. It is reported as a warning and never aborts a run.
	ErrMissingSearchKey = errors.New("search key missing")

	// ErrStoreConnection indicates the backing store could not be reached.
	ErrStoreConnection = errors.New("store connection failed")

	// ErrStoreWrite indicates the backing store rejected a write.
	ErrStoreWrite = errors.New("store write rejected")

	// ErrRunAborted indicates the run was interrupted before reaching DONE.
	ErrRunAborted = errors.New("run aborted")
)

// ComputeError describes a failed external computation.
type ComputeError struct {
	// Command is the rendered command line.
	Command string

	// ExitCode is the process exit status. -1 means the process did not start.
	ExitCode int

	// Missing is true when the command exited zero but left no artifact.
	Missing bool

	// Err is the cause when the process could not be run at all.
	Err error
}

func (e *ComputeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("running %s: %v", e.Command, e.Err)
	}
	if e.Missing {
		return fmt.Sprintf("command exited 0 but target artifact is missing: %s", e.Command)
	}
	return fmt.Sprintf("command exited %d: %s", e.ExitCode, e.Command)
}

// Unwrap lets errors.Is match ErrComputeFailed and the cause, if any.
func (e *ComputeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrComputeFailed, e.Err}
	}
	return []error{ErrComputeFailed}
}
