package source_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"disruption-sync/core/source"
	"disruption-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseObjectPattern(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantBucket  string
		wantPattern string
		wantErr     bool
	}{
		{"Nested", "s3://events/2024/**/*.cbor", "events", "2024/**/*.cbor", false},
		{"Flat", "s3://events/*.cbor", "events", "*.cbor", false},
		{"NoPattern", "s3://events", "", "", true},
		{"EmptyBucket", "s3:///x.cbor", "", "", true},
		{"Local", "/var/log/*.cbor", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, pattern, err := source.ParseObjectPattern(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.cbor", "a.cbor", "notes.txt", "sub/c.cbor", "sub/deeper/0.cbor"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	}
	// A directory that matches the pattern must not be listed.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.cbor"), 0o755))

	t.Run("Recursive", func(t *testing.T) {
		src := source.NewFileSource(filepath.Join(dir, "**", "*.cbor"))

		names, err := src.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.cbor"),
			filepath.Join(dir, "b.cbor"),
			filepath.Join(dir, "sub", "c.cbor"),
			filepath.Join(dir, "sub", "deeper", "0.cbor"),
		}, names)

		rc, err := src.Open(context.Background(), names[0])
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "a.cbor", string(data))
	})

	t.Run("NoMatches", func(t *testing.T) {
		names, err := source.NewFileSource(filepath.Join(dir, "*.json")).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("BadPattern", func(t *testing.T) {
		_, err := source.NewFileSource(filepath.Join(dir, "[")).List(context.Background())
		assert.Error(t, err)
	})
}

func objectChannel(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestObjectSource_List(t *testing.T) {
	t.Run("FiltersAndSorts", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "events").Return(true, nil)
		client.On("ListObjects", mock.Anything, "events", minio.ListObjectsOptions{Prefix: "log/", Recursive: true}).
			Return(objectChannel(
				minio.ObjectInfo{Key: "log/2024/02.cbor"},
				minio.ObjectInfo{Key: "log/readme.md"},
				minio.ObjectInfo{Key: "log/2023/12.cbor"},
				minio.ObjectInfo{Key: "log/01.cbor"},
			))

		src := source.NewObjectSource(client, "events", "log/**/*.cbor")
		keys, err := src.List(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"log/01.cbor", "log/2023/12.cbor", "log/2024/02.cbor"}, keys)
		client.AssertExpectations(t)
	})

	t.Run("RootPattern", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "events").Return(true, nil)
		client.On("ListObjects", mock.Anything, "events", minio.ListObjectsOptions{Prefix: "", Recursive: true}).
			Return(objectChannel(minio.ObjectInfo{Key: "b.cbor"}, minio.ObjectInfo{Key: "a.cbor"}))

		keys, err := source.NewObjectSource(client, "events", "*.cbor").List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a.cbor", "b.cbor"}, keys)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "events").Return(false, nil)

		_, err := source.NewObjectSource(client, "events", "*.cbor").List(context.Background())
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "events").Return(true, nil)
		client.On("ListObjects", mock.Anything, "events", mock.Anything).
			Return(objectChannel(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := source.NewObjectSource(client, "events", "*.cbor").List(context.Background())
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestObjectSource_Open(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "events", "a.cbor", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("payload")), nil)

	rc, err := source.NewObjectSource(client, "events", "*.cbor").Open(context.Background(), "a.cbor")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
