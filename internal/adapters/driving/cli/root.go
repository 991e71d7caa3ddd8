// Package cli implements the bedstat command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bedstat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bedstat-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	configPath string
	verbose    bool
)

// Services are the core services the commands drive.
type Services struct {
	Settings domain.Settings
	Config   driven.ConfigStore
	Pipeline driving.PipelineService
	Records  driving.RecordService
}

// ServiceFactory builds Services from a configuration file path. An empty
// path selects the default lookup.
type ServiceFactory func(configPath string) (*Services, error)

var (
	newServices ServiceFactory
	svc         *Services
)

var rootCmd = &cobra.Command{
	Use:   "bedstat",
	Short: "Compute and record statistics for BED region sets",
	Long: `bedstat runs a statistics computation over a BED file, merges the result
with sample metadata and registers the record in a queryable store.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "bedbase-config", "",
		"path to the configuration file (default $BEDBASE_CONFIG or ~/.bedstat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command with services built by factory.
func Execute(factory ServiceFactory) error {
	newServices = factory
	return rootCmd.Execute()
}

// loadServices builds services once per process, before any subcommand.
func loadServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if svc != nil || cmd == versionCmd {
		return nil
	}
	if newServices == nil {
		return errors.New("services not configured")
	}

	logger.Section("Configuration")
	s, err := newServices(configPath)
	if err != nil {
		return err
	}
	if s.Config != nil {
		logger.Debug("config file: %s", s.Config.Path())
	}
	svc = s
	return nil
}
