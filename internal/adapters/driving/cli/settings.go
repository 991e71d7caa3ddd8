package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bedstat-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage bedstat settings",
	Long: `View and change the settings read from the configuration file.

Settings can be overridden per run with flags on the run command.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it to the configuration file.

Available keys:
  path.bedstat_output    - base output directory
  database.dir           - directory holding the record database
  pipeline.executable    - interpreter used to run the computation
  pipeline.script        - computation entry point
  pipeline.genome        - default genome assembly
  pipeline.search_terms  - comma separated metadata keys to merge`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

// settableKeys lists the keys settings set accepts.
var settableKeys = []string{
	services.KeyOutputDir,
	services.KeyDatabaseDir,
	services.KeyExecutable,
	services.KeyScript,
	services.KeyGenome,
	services.KeySearchTerms,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if svc == nil {
		return errors.New("settings service not configured")
	}
	settings := svc.Settings

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	if svc.Config != nil {
		cmd.Printf("Config file: %s\n", svc.Config.Path())
		cmd.Println()
	}

	cmd.Println("[Paths]")
	cmd.Printf("  Output: %s\n", settings.OutputDir)
	cmd.Printf("  Database: %s\n", valueOrDefault(settings.DatabaseDir))
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Executable: %s\n", settings.Executable)
	cmd.Printf("  Script: %s\n", valueOrDefault(settings.Script))
	cmd.Printf("  Genome: %s\n", valueOrNotSet(settings.Genome))
	cmd.Printf("  Search terms: %s\n", strings.Join(settings.SearchTerms, ", "))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Config == nil {
		return errors.New("config store not configured")
	}
	key, raw := args[0], args[1]
	if !isSettableKey(key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settableKeys, ", "))
	}

	var value any = raw
	if key == services.KeySearchTerms {
		terms := splitList(raw)
		if len(terms) == 0 {
			return errors.New("search terms cannot be empty")
		}
		value = terms
	}

	if err := svc.Config.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

func isSettableKey(key string) bool {
	for _, k := range settableKeys {
		if k == key {
			return true
		}
	}
	return false
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func valueOrDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}

func valueOrNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
