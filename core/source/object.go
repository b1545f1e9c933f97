package source

import (
	"context"
	"fmt"
	"io"
	"sort"

	"disruption-sync/core/storage"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/minio-go/v7"
)

// ObjectSource discovers event files in a bucket. Keys are matched against the pattern
// with the same `**` semantics as FileSource.
type ObjectSource struct {
	client  storage.Client
	bucket  string
	pattern string
}

// NewObjectSource creates an ObjectSource listing bucket with the given key pattern.
func NewObjectSource(client storage.Client, bucket, pattern string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, pattern: pattern}
}

// List returns the keys matching the pattern, sorted. Only the static prefix of the
// pattern is listed.
func (s *ObjectSource) List(ctx context.Context) ([]string, error) {
	if !doublestar.ValidatePattern(s.pattern) {
		return nil, fmt.Errorf("invalid object pattern %q: %w", s.pattern, doublestar.ErrBadPattern)
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	prefix, _ := doublestar.SplitPattern(s.pattern)
	if prefix == "." {
		prefix = ""
	} else {
		prefix += "/"
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", s.bucket, prefix, obj.Err)
		}
		ok, err := doublestar.Match(s.pattern, obj.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, obj.Key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Open downloads one key returned by List.
func (s *ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
}
