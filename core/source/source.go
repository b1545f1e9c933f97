package source

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ObjectScheme prefixes event patterns that refer to a bucket instead of the local filesystem.
const ObjectScheme = "s3://"

// Source enumerates and opens event files. List must return names sorted lexicographically,
// which is the processing order of an extraction run.
type Source interface {
	// List returns the names of all files matching the source's pattern.
	List(ctx context.Context) ([]string, error)
	// Open returns a reader over one file returned by List.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// IsObjectPattern reports whether pattern addresses a bucket (s3://bucket/pattern).
func IsObjectPattern(pattern string) bool {
	return strings.HasPrefix(pattern, ObjectScheme)
}

// ParseObjectPattern splits s3://bucket/key-pattern into its bucket and key pattern.
func ParseObjectPattern(raw string) (bucket, pattern string, err error) {
	if !IsObjectPattern(raw) {
		return "", "", fmt.Errorf("object pattern %q must start with %s", raw, ObjectScheme)
	}
	rest := strings.TrimPrefix(raw, ObjectScheme)
	bucket, pattern, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || pattern == "" {
		return "", "", fmt.Errorf("object pattern %q must look like %sbucket/pattern", raw, ObjectScheme)
	}
	return bucket, pattern, nil
}
