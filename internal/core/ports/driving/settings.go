package driving

import "github.com/custodia-labs/bedstat-cli/internal/core/domain"

// SettingsService resolves pipeline settings.
type SettingsService interface {
	// Get returns the effective settings, with defaults for unset keys.
	Get() domain.Settings
}
