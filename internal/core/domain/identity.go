package domain

import "path/filepath"

// InputFile is a region-set (BED) file on disk.
type InputFile struct {
	// Path is the path as given by the caller.
	Path string
}

// Name returns the base filename.
func (f InputFile) Name() string {
	return filepath.Base(f.Path)
}

// FileIdentity is the canonical short name of an input file. It keys the
// output location and the compute checkpoint.
type FileIdentity string

// String returns the identity as a plain string.
func (id FileIdentity) String() string {
	return string(id)
}

// OutputLocation is where the statistics for one FileIdentity are written.
type OutputLocation struct {
	// Dir is the absolute output folder, base_output_dir/<identity>.
	Dir string

	// Artifact is the target JSON produced by the external computation,
	// Dir/<identity>.json. Its existence marks the compute step complete.
	Artifact string
}
