package domain

// Settings are the pipeline's configured defaults.
type Settings struct {
	// OutputDir is the base output directory for computation results.
	OutputDir string

	// DatabaseDir holds the SQLite store. Empty selects the store default.
	DatabaseDir string

	// Executable runs the statistics computation.
	Executable string

	// Script is the computation's entry point passed to Executable.
	Script string

	// Genome is the default assembly identifier.
	Genome string

	// SearchTerms are the sample attributes merged into records.
	SearchTerms []string
}

// DefaultSettings returns settings used when nothing is configured.
func DefaultSettings() Settings {
	terms := make([]string, len(DefaultSearchTerms))
	copy(terms, DefaultSearchTerms)
	return Settings{
		OutputDir:   "bedstat_output",
		Executable:  "Rscript",
		SearchTerms: terms,
	}
}
