package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSource discovers event files on the local filesystem. The pattern supports
// `**` for recursive matching.
type FileSource struct {
	pattern string
}

// NewFileSource creates a FileSource for the given glob pattern.
func NewFileSource(pattern string) *FileSource {
	return &FileSource{pattern: pattern}
}

// List returns the regular files matching the pattern, sorted.
func (s *FileSource) List(ctx context.Context) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(s.pattern)) {
		return nil, fmt.Errorf("invalid log pattern %q: %w", s.pattern, doublestar.ErrBadPattern)
	}

	matches, err := doublestar.FilepathGlob(s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %q: %w", s.pattern, err)
	}

	sort.Strings(matches)
	return matches, nil
}

// Open opens one file returned by List.
func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}
