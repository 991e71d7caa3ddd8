package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/bedstat-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
	"github.com/custodia-labs/bedstat-cli/internal/core/services"
)

// fakePipeline records the options it was run with and returns a canned result.
type fakePipeline struct {
	mu     sync.Mutex
	calls  []domain.RunOptions
	result *domain.RunResult
	err    error
}

func (p *fakePipeline) Run(_ context.Context, opts domain.RunOptions) (*domain.RunResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, opts)
	return p.result, p.err
}

func (p *fakePipeline) lastCall() domain.RunOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}

type testEnv struct {
	pipeline *fakePipeline
	records  *memory.RecordStore
	config   *memory.ConfigStore
}

// setupTestServices installs services backed by memory stores and returns a
// cleanup function restoring the previous state.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		pipeline: &fakePipeline{result: &domain.RunResult{
			RunID:    "run-1",
			Identity: "sample1",
			Location: domain.OutputLocation{Dir: "/out/sample1", Artifact: "/out/sample1/sample1.json"},
			State:    domain.StateDone,
			Path: []domain.RunState{
				domain.StateStart, domain.StateIdentityResolved, domain.StateComputed,
				domain.StateMerged, domain.StateCommitted, domain.StateDone,
			},
			Committed: true,
		}},
		records: memory.NewRecordStore(),
		config:  memory.NewConfigStore(nil),
	}

	settings := domain.DefaultSettings()
	settings.Genome = "hg38"

	prev := svc
	svc = &Services{
		Settings: settings,
		Config:   env.config,
		Pipeline: env.pipeline,
		Records:  services.NewRecordService(memory.NewConnector(env.records)),
	}
	return env, func() {
		svc = prev
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so package-level state does
// not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
