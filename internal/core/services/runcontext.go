package services

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/logger"
)

// Checkpoint file names inside the checkpoint directory.
const (
	LogFileName = "bedstat_log.md"

	flagPrefix     = "bedstat_"
	flagSuffix     = ".flag"
	flagRunning    = "running"
	flagCompleted  = "completed"
	flagFailed     = "failed"
	logFileMode    = 0o644
	checkpointMode = 0o755
)

var allFlags = []string{flagRunning, flagCompleted, flagFailed}

// RunContext is the state shared by the steps of one pipeline run: the
// checkpoint directory, the logging sink and an abort flag. It is created
// once per run and closed once at the end.
type RunContext struct {
	// ID identifies the run in logs.
	ID string

	// CheckpointDir holds the run log and the status flag.
	CheckpointDir string

	// Log is the run logger. It writes to the console and the run log file.
	Log *slog.Logger

	logFile *os.File
	aborted atomic.Bool
	closed  atomic.Bool
}

// NewRunContext creates checkpointDir if needed, opens the run log in
// append mode and marks the run as running.
func NewRunContext(id, checkpointDir string) (*RunContext, error) {
	if err := os.MkdirAll(checkpointDir, checkpointMode); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(checkpointDir, LogFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}

	rc := &RunContext{
		ID:            id,
		CheckpointDir: checkpointDir,
		Log:           logger.New(f).With(slog.String("run", id)),
		logFile:       f,
	}

	if err := rc.setFlag(flagRunning); err != nil {
		f.Close()
		return nil, err
	}

	rc.Log.Info("pipeline started", "checkpoint_dir", checkpointDir)
	return rc, nil
}

// Output is where external process output is copied. It is the run log.
func (rc *RunContext) Output() io.Writer {
	if rc.logFile == nil {
		return io.Discard
	}
	return rc.logFile
}

// Abort marks the run as aborted. Steps check Aborted before starting.
func (rc *RunContext) Abort() {
	rc.aborted.Store(true)
}

// Aborted reports whether Abort was called.
func (rc *RunContext) Aborted() bool {
	return rc.aborted.Load()
}

// FlagPath returns the path of the status flag for status.
func (rc *RunContext) FlagPath(status string) string {
	return filepath.Join(rc.CheckpointDir, flagPrefix+status+flagSuffix)
}

// Close records the terminal state as a completed or failed flag and
// closes the run log. Calling Close more than once is a no-op.
func (rc *RunContext) Close(final domain.RunState) error {
	if !rc.closed.CompareAndSwap(false, true) {
		return nil
	}

	var result *multierror.Error

	status := flagFailed
	if final == domain.StateDone {
		status = flagCompleted
	}
	if err := rc.setFlag(status); err != nil {
		result = multierror.Append(result, err)
	}

	rc.Log.Info("pipeline finished", "state", final.String(), "aborted", rc.Aborted())

	if rc.logFile != nil {
		if err := rc.logFile.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing run log: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// setFlag replaces whatever status flag exists with status.
func (rc *RunContext) setFlag(status string) error {
	for _, s := range allFlags {
		if s == status {
			continue
		}
		if err := os.Remove(rc.FlagPath(s)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s flag: %w", s, err)
		}
	}

	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(rc.FlagPath(status), []byte(stamp), logFileMode); err != nil {
		return fmt.Errorf("writing %s flag: %w", status, err)
	}
	return nil
}
