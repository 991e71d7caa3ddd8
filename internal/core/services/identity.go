package services

import (
	"path/filepath"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// IdentityResolver maps input files to their identity and output location
// under a fixed base output directory.
type IdentityResolver struct {
	baseDir string
}

// NewIdentityResolver creates a resolver rooted at baseOutputDir.
func NewIdentityResolver(baseOutputDir string) *IdentityResolver {
	return &IdentityResolver{baseDir: baseOutputDir}
}

// Resolve returns the identity and output location of in. The result
// depends only on the base filename and the base directory.
func (r *IdentityResolver) Resolve(in domain.InputFile) (domain.FileIdentity, domain.OutputLocation) {
	id := FileIdentityOf(in.Path)

	dir := filepath.Join(r.baseDir, string(id))
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return id, domain.OutputLocation{
		Dir:      dir,
		Artifact: filepath.Join(dir, string(id)+".json"),
	}
}

// FileIdentityOf strips exactly two extensions from the base filename:
// sample.bed.gz -> sample. A name with a single extension loses it and the
// second strip is a no-op, so sample.bed -> sample and sample -> sample.
// Names with three or more extensions keep the extras: a.narrowPeak.bed.gz
// -> a.narrowPeak.
func FileIdentityOf(path string) domain.FileIdentity {
	root, _ := splitExt(domain.InputFile{Path: path}.Name())
	root, _ = splitExt(root)
	return domain.FileIdentity(root)
}

// splitExt splits name at its last dot. Dots that only lead the name (as in
// ".bashrc") do not start an extension.
func splitExt(name string) (root, ext string) {
	dot := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			dot = i
			break
		}
	}
	if dot <= 0 {
		return name, ""
	}
	for i := 0; i < dot; i++ {
		if name[i] != '.' {
			return name[:dot], name[dot:]
		}
	}
	return name, ""
}
