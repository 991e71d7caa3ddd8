// Command bedstat computes statistics for BED files and records them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/process"
	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/sample"
	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bedstat-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/bedstat-cli/internal/core/services"
	"github.com/custodia-labs/bedstat-cli/internal/logger"
)

func main() {
	if err := cli.Execute(buildServices); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters for one invocation.
func buildServices(configPath string) (*cli.Services, error) {
	path, err := file.ResolvePath(configPath)
	if err != nil {
		return nil, err
	}
	configStore, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settings := services.NewSettingsService(configStore).Get()
	logger.Debug("output dir: %s", settings.OutputDir)
	logger.Debug("entry point: %s %s", settings.Executable, settings.Script)

	connector := sqlite.NewConnector(settings.DatabaseDir)

	invoker := services.NewComputeInvoker(process.NewRunner(""), settings.Executable, settings.Script)
	merger := services.NewMetadataMerger(sample.NewYAMLLoader(), settings.SearchTerms)
	committer := services.NewIngestionCommitter(connector)

	return &cli.Services{
		Settings: settings,
		Config:   configStore,
		Pipeline: services.NewPipeline(invoker, merger, committer),
		Records:  services.NewRecordService(connector),
	}, nil
}
