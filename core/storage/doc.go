// Package storage wraps the MinIO client used to read event logs that live in an
// S3-compatible bucket instead of on the local filesystem.
//
// Only the read operations are exposed through the Client interface. The bucket
// itself is not configured here: it is part of the s3://bucket/pattern event
// pattern given on the command line.
//
// # Testing
//
// The mocks subpackage provides a testify mock of Client.
package storage
