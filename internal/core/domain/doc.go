// Package domain defines the core business entities for bedstat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - InputFile, FileIdentity, OutputLocation: where a region set's
//     statistics live on disk
//   - Command, ExecResult: one external computation and its outcome
//   - Record: the merged metadata document committed to the store
//   - RunState, RunOptions, RunResult: pipeline state and reporting
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
