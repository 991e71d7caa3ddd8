package driving

import (
	"context"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// PipelineService runs the bedstat pipeline for one input file.
type PipelineService interface {
	// Run drives one file from START to DONE or FAILED. The returned
	// result is never nil; its Err is also returned when the run fails.
	Run(ctx context.Context, opts domain.RunOptions) (*domain.RunResult, error)
}
