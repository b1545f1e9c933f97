// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration. A sqlite driver is also accepted, which is what the
// tests and local dry runs use.
//
// # Connect
//
// Connect builds the DSN, opens the pool and pings it once with the configured timeout.
// The tool is strictly sequential, so the pool is kept small.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table (SHOW COLUMNS on MySQL,
// PRAGMA table_info on SQLite). VerifySchema compares it with the columns the
// reconciliation queries depend on and fails with a MissingColumnsError before any
// query runs against an incompatible store.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database.WithCredential(cred))
//	if err != nil {
//	    return err
//	}
//	if err := database.VerifySchema(db, models.RequiredColumns()); err != nil {
//	    return err
//	}
package database
