package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

func TestFileIdentityOf(t *testing.T) {
	tests := []struct {
		path string
		want domain.FileIdentity
	}{
		{"sample.bed.gz", "sample"},
		{"/data/in/sample.bed.gz", "sample"},
		{"/data/in.d/GSM123_peaks.narrowPeak.gz", "GSM123_peaks"},
		// Only two extensions are stripped
		{"a.narrowPeak.bed.gz", "a.narrowPeak"},
		// One extension: the second strip is a no-op
		{"sample.bed", "sample"},
		// No extension
		{"sample", "sample"},
		// Leading dots do not start an extension
		{".hidden.bed", ".hidden"},
		{"..bed", "..bed"},
		{"/x/.bed.gz", ".bed"},
		// Trailing dot counts as an empty extension
		{"sample.bed.", "sample"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FileIdentityOf(tt.path))
		})
	}
}

func TestFileIdentityOf_Idempotent(t *testing.T) {
	for _, p := range []string{"sample.bed.gz", "a.b.c.d", "plain"} {
		assert.Equal(t, FileIdentityOf(p), FileIdentityOf(p))
	}
}

func TestIdentityResolver_Resolve(t *testing.T) {
	base := t.TempDir()
	r := NewIdentityResolver(base)

	id, loc := r.Resolve(domain.InputFile{Path: "/elsewhere/sample.bed.gz"})

	assert.Equal(t, domain.FileIdentity("sample"), id)
	assert.Equal(t, filepath.Join(base, "sample"), loc.Dir)
	assert.Equal(t, filepath.Join(base, "sample", "sample.json"), loc.Artifact)
}

func TestIdentityResolver_RelativeBaseIsAbsolute(t *testing.T) {
	r := NewIdentityResolver("out")

	_, loc := r.Resolve(domain.InputFile{Path: "sample.bed.gz"})

	assert.True(t, filepath.IsAbs(loc.Dir))
	assert.Equal(t, "sample", filepath.Base(loc.Dir))
	assert.Equal(t, "out", filepath.Base(filepath.Dir(loc.Dir)))
}

func TestIdentityResolver_SameIdentitySameLocation(t *testing.T) {
	r := NewIdentityResolver(t.TempDir())

	_, a := r.Resolve(domain.InputFile{Path: "/one/sample.bed.gz"})
	_, b := r.Resolve(domain.InputFile{Path: "/two/sample.bigBed.xz"})

	assert.Equal(t, a, b)
}
