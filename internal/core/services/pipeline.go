package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bedstat-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineService = (*Pipeline)(nil)

// Pipeline sequences identity resolution, computation, merging and commit
// for one input file:
//
//	START -> IDENTITY_RESOLVED -> COMPUTED|SKIPPED -> MERGED -> COMMITTED|COMMIT_SKIPPED -> DONE
//
// Any failure moves the run to FAILED, which is terminal. There is no
// retry; rerunning is cheap because a present artifact skips the compute.
type Pipeline struct {
	invoker   *ComputeInvoker
	merger    *MetadataMerger
	committer *IngestionCommitter
	now       func() time.Time
}

// NewPipeline creates a pipeline from its steps.
func NewPipeline(invoker *ComputeInvoker, merger *MetadataMerger, committer *IngestionCommitter) *Pipeline {
	return &Pipeline{
		invoker:   invoker,
		merger:    merger,
		committer: committer,
		now:       time.Now,
	}
}

// run tracks one invocation's result and state path.
type run struct {
	result *domain.RunResult
	rc     *RunContext
}

func (r *run) enter(state domain.RunState) {
	r.result.State = state
	r.result.Path = append(r.result.Path, state)
	if r.rc != nil {
		r.rc.Log.Debug("state", "state", state.String())
	}
}

func (r *run) fail(err error) error {
	if r.result.State.Terminal() {
		return err
	}
	r.result.Err = err
	r.enter(domain.StateFailed)
	if r.rc != nil {
		r.rc.Log.Error("pipeline failed", "error", err.Error())
	}
	return err
}

// Run drives one file to DONE or FAILED.
//
//nolint:gocyclo // Sequential state machine
func (p *Pipeline) Run(ctx context.Context, opts domain.RunOptions) (*domain.RunResult, error) {
	r := &run{result: &domain.RunResult{
		RunID:     uuid.NewString(),
		State:     domain.StateStart,
		Path:      []domain.RunState{domain.StateStart},
		StartedAt: p.now(),
	}}
	defer func() { r.result.FinishedAt = p.now() }()

	if opts.BedfilePath == "" {
		return r.result, r.fail(fmt.Errorf("%w: bedfile path is required", domain.ErrInvalidInput))
	}
	if opts.Genome == "" {
		return r.result, r.fail(fmt.Errorf("%w: genome assembly is required", domain.ErrInvalidInput))
	}

	// 1. Identity
	in := domain.InputFile{Path: opts.BedfilePath}
	id, loc := NewIdentityResolver(opts.OutputDir).Resolve(in)
	r.result.Identity = id
	r.result.Location = loc

	rc, err := NewRunContext(r.result.RunID, loc.Dir)
	if err != nil {
		return r.result, r.fail(err)
	}
	r.rc = rc
	defer func() {
		if cerr := rc.Close(r.result.State); cerr != nil {
			logger.Warn("finalising run %s: %v", r.result.RunID, cerr)
		}
	}()
	rc.Log.Info("resolved identity", "fileid", id.String(), "outfolder", loc.Dir)
	r.enter(domain.StateIdentityResolved)

	// 2. Compute, or skip when the artifact exists
	if err := checkAbort(ctx, rc); err != nil {
		return r.result, r.fail(err)
	}
	skipped, err := p.invoker.Ensure(ctx, rc, ComputeRequest{
		Input:    in,
		Identity: id,
		Location: loc,
		Genome:   opts.Genome,
		Force:    opts.Force,
	})
	if err != nil {
		if ctx.Err() != nil {
			rc.Abort()
			err = fmt.Errorf("%w: %w", domain.ErrRunAborted, err)
		}
		return r.result, r.fail(err)
	}
	r.result.ComputeSkipped = skipped
	if skipped {
		r.enter(domain.StateSkipped)
	} else {
		r.enter(domain.StateComputed)
	}

	// 3. Merge
	if err := checkAbort(ctx, rc); err != nil {
		return r.result, r.fail(err)
	}
	rec, warnings, err := p.merger.Merge(rc, MergeRequest{
		ArtifactPath: loc.Artifact,
		SamplePath:   opts.SampleYAMLPath,
		Input:        in,
	})
	if err != nil {
		return r.result, r.fail(err)
	}
	r.result.Record = rec
	r.result.Warnings = warnings
	r.enter(domain.StateMerged)

	// 4. Commit
	if opts.SkipCommit {
		rc.Log.Info("skipping store commit")
		r.enter(domain.StateCommitSkipped)
		r.enter(domain.StateDone)
		return r.result, nil
	}
	if err := checkAbort(ctx, rc); err != nil {
		return r.result, r.fail(err)
	}
	if err := p.committer.Commit(ctx, rc, rec); err != nil {
		return r.result, r.fail(err)
	}
	r.result.Committed = true
	r.enter(domain.StateCommitted)
	r.enter(domain.StateDone)
	return r.result, nil
}

// checkAbort sets the abort flag and returns ErrRunAborted once ctx is done.
func checkAbort(ctx context.Context, rc *RunContext) error {
	if err := ctx.Err(); err != nil {
		rc.Abort()
		return fmt.Errorf("%w: %w", domain.ErrRunAborted, err)
	}
	if rc.Aborted() {
		return domain.ErrRunAborted
	}
	return nil
}

