/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package blob defines the object storage abstraction dataset archives are
// transferred through.
package blob

import (
	"context"
	"io"
	"time"
)

// Driver identifies a blob storage backend.
type Driver string

const (
	// DriverS3 is an S3 or S3-compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps objects in process memory.
	DriverMemory Driver = "memory"
)

// EntityType names blobs in NotFound errors.
const EntityType = "blob"

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
	// ContentLength is sent with the object when known.
	ContentLength int64
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a single-bucket object store. Put overwrites an existing key.
// Get and Head return an error satisfying errors.IsNotFound for a missing key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}
