// Package sqlite provides the SQLite-backed record store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Records are stored one row per file identity with the
// full document kept as JSON, so any top-level field can be queried with
// SQLite's JSON functions.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.bedstat/data/bedstat.db
package sqlite
