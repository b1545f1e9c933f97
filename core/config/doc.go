// Package config provides configuration management for disruption-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file in the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials, used only when the event pattern is an s3:// URL
//
// Defaults come from the `default` struct tags of each subsection. Environment variables
// map onto nested keys by replacing dots with underscores, so DATABASE_HOST sets
// database.host.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Host)
package config
