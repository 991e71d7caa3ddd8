package domain

import "time"

// RunState is a pipeline state.
type RunState int

// Pipeline states in transition order. Failed is reachable from any
// non-terminal state.
const (
	StateStart RunState = iota
	StateIdentityResolved
	StateComputed
	StateSkipped
	StateMerged
	StateCommitted
	StateCommitSkipped
	StateDone
	StateFailed
)

var runStateNames = map[RunState]string{
	StateStart:            "START",
	StateIdentityResolved: "IDENTITY_RESOLVED",
	StateComputed:         "COMPUTED",
	StateSkipped:          "SKIPPED",
	StateMerged:           "MERGED",
	StateCommitted:        "COMMITTED",
	StateCommitSkipped:    "COMMIT_SKIPPED",
	StateDone:             "DONE",
	StateFailed:           "FAILED",
}

func (s RunState) String() string {
	if name, ok := runStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition is possible.
func (s RunState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// RunOptions are the caller-supplied inputs of one pipeline run.
type RunOptions struct {
	// BedfilePath is the input region-set file. Required.
	BedfilePath string

	// SampleYAMLPath is an optional sample metadata side file.
	SampleYAMLPath string

	// Genome is the assembly identifier passed to the computation.
	Genome string

	// OutputDir is the base output directory. Each identity gets a subfolder.
	OutputDir string

	// Force reruns the computation even when the artifact exists.
	Force bool

	// SkipCommit bypasses the store entirely, including connecting.
	SkipCommit bool
}

// RunResult reports how a run ended.
type RunResult struct {
	// RunID uniquely identifies this invocation.
	RunID string

	// Identity is the resolved file identity.
	Identity FileIdentity

	// Location is the resolved output location.
	Location OutputLocation

	// State is the terminal state, DONE or FAILED.
	State RunState

	// Path lists every state entered, in order.
	Path []RunState

	// ComputeSkipped is true when the artifact already existed.
	ComputeSkipped bool

	// Committed is true when the record was written to the store.
	Committed bool

	// Record is the merged record, nil if the run failed before merging.
	Record *Record

	// Warnings are non-fatal problems, one per missing search key.
	Warnings []string

	// Err is the fatal error when State is StateFailed.
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the run reached DONE.
func (r *RunResult) Succeeded() bool {
	return r.State == StateDone
}

// Duration is the wall-clock time of the run.
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
