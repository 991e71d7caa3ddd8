package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

var (
	runBedfile    string
	runSampleYAML string
	runNoDBCommit bool
	runGenome     string
	runOutfolder  string
	runForce      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute statistics for a BED file and commit them",
	Long: `Runs the statistics computation for one BED file unless its output already
exists, merges the result with optional sample metadata and writes the record
to the store.

Exits non-zero if any step fails.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runBedfile, "bedfile", "", "full path to the BED file to process")
	runCmd.Flags().StringVarP(&runSampleYAML, "sample-yaml", "y", "",
		"YAML file with sample attributes to merge into the record")
	runCmd.Flags().BoolVar(&runNoDBCommit, "nodbcommit", false, "skip the commit to the store")
	runCmd.Flags().StringVarP(&runGenome, "genome", "g", "", "genome assembly (default pipeline.genome)")
	runCmd.Flags().StringVarP(&runOutfolder, "outfolder", "O", "",
		"base output directory (default path.bedstat_output)")
	runCmd.Flags().BoolVarP(&runForce, "force", "N", false, "recompute even when the output exists")
	_ = runCmd.MarkFlagRequired("bedfile")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if svc == nil || svc.Pipeline == nil {
		return errors.New("pipeline service not configured")
	}

	opts := domain.RunOptions{
		BedfilePath:    runBedfile,
		SampleYAMLPath: runSampleYAML,
		Genome:         firstNonEmpty(runGenome, svc.Settings.Genome),
		OutputDir:      firstNonEmpty(runOutfolder, svc.Settings.OutputDir),
		Force:          runForce,
		SkipCommit:     runNoDBCommit,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := svc.Pipeline.Run(ctx, opts)
	if res != nil {
		printRunSummary(cmd, res)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
