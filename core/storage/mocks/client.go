// Package mocks provides a testify mock of storage.Client for exercising event listing
// without an object store.
package mocks

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client records calls made while listing and downloading event objects.
type Client struct {
	mock.Mock
}

// BucketExists returns the configured existence flag and error.
func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

// GetObject returns the configured event reader, or nil with the configured error.
func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

// ListObjects returns the configured listing channel. Without one the listing is empty.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if listing, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return listing
	}
	empty := make(chan minio.ObjectInfo)
	close(empty)
	return empty
}
