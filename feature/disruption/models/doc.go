// Package models defines the GORM models of the five store tables that hold
// disruption associations.
//
// The table and column names are those of the production MySQL schema; the models
// exist so tests can create the schema with AutoMigrate and so the competitor
// synchronizer can bulk insert with Create. Reads go through set-based raw SQL in
// the resolve and syncer packages.
package models
