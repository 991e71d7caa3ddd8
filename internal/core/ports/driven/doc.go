// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CommandRunner: Runs the external statistics computation
//   - SampleLoader: Parses the sample metadata side file
//   - RecordStore: Merged record persistence and lookup
//   - RecordStoreConnector: Lazily opens a RecordStore
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
