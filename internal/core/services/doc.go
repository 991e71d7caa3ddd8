// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The bedstat pipeline is built from four steps, each usable on its own:
//
//   - IdentityResolver: input path to file identity and output location
//   - ComputeInvoker: run-or-skip of the external statistics computation
//   - MetadataMerger: artifact JSON plus sample metadata into a Record
//   - IngestionCommitter: single upsert of the Record into the store
//
// Pipeline sequences them and owns the run's state machine. A RunContext
// carries the per-run checkpoint directory, logger and abort flag.
package services
