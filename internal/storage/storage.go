// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage abstracts the S3-compatible object store that holds
// uploaded images and CVs. S3Store talks to MinIO or AWS; MemoryStore backs
// tests and local runs without an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned when a key does not exist in a bucket.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when an operation targets a missing bucket.
	ErrBucketNotFound = errors.New("bucket not found")
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Object is an open object stream. Callers must close Body.
type Object struct {
	Info ObjectInfo
	Body io.ReadCloser
}

// ObjectStore is the set of object store operations the application uses.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	SetBucketPolicy(ctx context.Context, bucket, policy string) error
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string) (*Object, error)
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	PresignedPutObject(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PublicReadPolicy returns a bucket policy granting anonymous GetObject on
// every key in bucket.
func PublicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// EnsureBucket creates bucket when it does not exist yet and reports whether
// it was created.
func EnsureBucket(ctx context.Context, store ObjectStore, bucket string) (bool, error) {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if exists {
		return false, nil
	}
	if err := store.MakeBucket(ctx, bucket); err != nil {
		return false, fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return true, nil
}
