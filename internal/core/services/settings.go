package services

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyOutputDir   = "path.bedstat_output"
	KeyDatabaseDir = "database.dir"
	KeyExecutable  = "pipeline.executable"
	KeyScript      = "pipeline.script"
	KeyGenome      = "pipeline.genome"
	KeySearchTerms = "pipeline.search_terms"
)

// DefaultScriptName is the computation entry point looked up next to the
// installation when pipeline.script is unset.
const DefaultScriptName = "regionstat.R"

// SettingsService resolves pipeline settings from configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns configured settings, falling back to defaults per key.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.DefaultSettings()
	settings.Script = defaultScriptPath()
	if s.configStore == nil {
		return settings
	}

	settings.OutputDir = s.getString(KeyOutputDir, settings.OutputDir)
	settings.DatabaseDir = s.getString(KeyDatabaseDir, settings.DatabaseDir)
	settings.Executable = s.getString(KeyExecutable, settings.Executable)
	settings.Script = s.getString(KeyScript, settings.Script)
	settings.Genome = s.getString(KeyGenome, settings.Genome)
	if terms := s.configStore.GetStringSlice(KeySearchTerms); len(terms) > 0 {
		settings.SearchTerms = terms
	}
	return settings
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

// defaultScriptPath is <install root>/tools/regionstat.R, where the install
// root is the parent of the binary's directory.
func defaultScriptPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "tools", DefaultScriptName)
}
