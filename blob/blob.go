// Package blob abstracts the object storage used for report exports.
// Three drivers exist: in-process memory (tests), local filesystem, and
// any S3-compatible service.
package blob

import (
	"context"
	"io"
	"time"
)

// Driver identifies a blob store implementation
type Driver string

// Supported drivers
const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

// Info describes a stored blob
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// PutOptions carries optional metadata for Put
type PutOptions struct {
	ContentType string
}

// Store is the object storage contract. Keys are flat, slash-separated
// strings; Put fails when the key already exists.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Delete(ctx context.Context, key string) (bool, error)
}
