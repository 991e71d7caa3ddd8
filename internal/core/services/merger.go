package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
)

// MergeRequest names the documents merged into one record.
type MergeRequest struct {
	// ArtifactPath is the computation's JSON output.
	ArtifactPath string

	// SamplePath is the optional sample metadata file.
	SamplePath string

	// Input is recorded in the record's bedfile_path field.
	Input domain.InputFile
}

// MetadataMerger builds records from a computation artifact and optional
// sample metadata.
type MetadataMerger struct {
	loader      driven.SampleLoader
	searchTerms []string
}

// NewMetadataMerger creates a merger. A nil or empty searchTerms selects
// domain.DefaultSearchTerms.
func NewMetadataMerger(loader driven.SampleLoader, searchTerms []string) *MetadataMerger {
	if len(searchTerms) == 0 {
		searchTerms = domain.DefaultSearchTerms
	}
	terms := make([]string, len(searchTerms))
	copy(terms, searchTerms)
	return &MetadataMerger{loader: loader, searchTerms: terms}
}

// Merge loads the artifact, overlays the search terms present in the
// sample metadata and records the input path. Each search term missing
// from the sample metadata yields one warning and leaves the artifact's
// value, or its absence, as it was.
func (m *MetadataMerger) Merge(rc *RunContext, req MergeRequest) (*domain.Record, []string, error) {
	rec, err := loadArtifact(req.ArtifactPath)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if req.SamplePath != "" {
		if m.loader == nil {
			return nil, nil, fmt.Errorf("%w: no sample loader configured", domain.ErrInvalidInput)
		}
		sample, err := m.loader.Load(req.SamplePath)
		if err != nil {
			return nil, nil, err
		}

		for _, key := range m.searchTerms {
			v, ok := sample[key]
			if !ok {
				rc.Log.Warn("can't find key in sample metadata", "key", key, "sample", req.SamplePath)
				warnings = append(warnings, fmt.Sprintf("%v: %s", domain.ErrMissingSearchKey, key))
				continue
			}
			rec.SetField(key, v)
		}
	}

	rec.SetBedfilePath(req.Input.Path)
	rc.Log.Info("merged record", "fields", rec.Len(), "data", rec.String())

	return rec, warnings, nil
}

func loadArtifact(path string) (*domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrMissingArtifact, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrMissingArtifact, path, err)
	}

	rec := domain.NewRecord()
	if err := rec.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrMissingArtifact, path, err)
	}
	return rec, nil
}
