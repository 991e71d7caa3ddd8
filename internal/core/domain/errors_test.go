package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrMissingArtifact, ErrComputeFailed,
		ErrSideFileParse, ErrMissingSearchKey, ErrStoreConnection, ErrStoreWrite,
		ErrRunAborted,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", ErrStoreConnection)

	assert.ErrorIs(t, wrapped, ErrStoreConnection)
	assert.NotErrorIs(t, wrapped, ErrStoreWrite)
	assert.Contains(t, wrapped.Error(), "store connection failed")
}

func TestComputeError(t *testing.T) {
	cause := errors.New("executable file not found")

	tests := []struct {
		name    string
		err     *ComputeError
		message string
		isCause bool
	}{
		{
			name:    "non-zero exit",
			err:     &ComputeError{Command: "Rscript regionstat.R", ExitCode: 2},
			message: "command exited 2: Rscript regionstat.R",
		},
		{
			name:    "missing artifact",
			err:     &ComputeError{Command: "Rscript regionstat.R", Missing: true},
			message: "command exited 0 but target artifact is missing: Rscript regionstat.R",
		},
		{
			name:    "start failure",
			err:     &ComputeError{Command: "Rscript", ExitCode: -1, Err: cause},
			message: "running Rscript: executable file not found",
			isCause: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrComputeFailed)
			assert.Equal(t, tt.isCause, errors.Is(tt.err, cause))

			var ce *ComputeError
			assert.True(t, errors.As(fmt.Errorf("wrapped: %w", tt.err), &ce))
		})
	}
}
