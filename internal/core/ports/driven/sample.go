package driven

// SampleLoader reads a sample metadata side file into an untyped mapping.
type SampleLoader interface {
	// Load parses the document at path. Malformed documents return an
	// error wrapping domain.ErrSideFileParse.
	Load(path string) (map[string]any, error)
}
