package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

var recordJSON bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Query committed records",
}

var recordGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordGet,
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List committed record identities",
	Args:  cobra.NoArgs,
	RunE:  runRecordList,
}

var recordSearchCmd = &cobra.Command{
	Use:   "search [key] [value]",
	Short: "Find records whose field equals a value",
	Long: `Find records whose top-level field equals the given value.

Example:
  bedstat record search genome hg38`,
	Args: cobra.ExactArgs(2),
	RunE: runRecordSearch,
}

func init() {
	recordGetCmd.Flags().BoolVar(&recordJSON, "json", false, "print the record as JSON")
	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordSearchCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Records == nil {
		return errors.New("record service not configured")
	}

	rec, err := svc.Records.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Record: %s\n", args[0])
	cmd.Printf("  Bedfile: %s\n", rec.BedfilePath())
	for _, key := range rec.Keys() {
		if key == domain.BedfilePathKey {
			continue
		}
		v, _ := rec.Field(key)
		cmd.Printf("  %s: %s\n", key, formatField(v))
	}
	return nil
}

func runRecordList(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Records == nil {
		return errors.New("record service not configured")
	}

	ids, err := svc.Records.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	printIDs(cmd, ids)
	return nil
}

func runRecordSearch(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Records == nil {
		return errors.New("record service not configured")
	}

	ids, err := svc.Records.Search(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	printIDs(cmd, ids)
	return nil
}

func printIDs(cmd *cobra.Command, ids []string) {
	if len(ids) == 0 {
		cmd.Println("No records found.")
		return
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	cmd.Printf("\n%d record(s)\n", len(ids))
}

// formatField renders a record value on one line.
func formatField(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
