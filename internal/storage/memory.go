// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is an in-process ObjectStore.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*memoryBucket
}

type memoryBucket struct {
	policy  string
	objects map[string]memoryObject
}

type memoryObject struct {
	data []byte
	info ObjectInfo
}

// NewMemoryStore creates an empty store with no buckets.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*memoryBucket)}
}

// BucketExists reports whether bucket has been made.
func (m *MemoryStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[bucket]
	return ok, nil
}

// MakeBucket creates bucket if it is missing.
func (m *MemoryStore) MakeBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[bucket]; !ok {
		m.buckets[bucket] = &memoryBucket{objects: make(map[string]memoryObject)}
	}
	return nil
}

// SetBucketPolicy stores the policy document verbatim.
func (m *MemoryStore) SetBucketPolicy(_ context.Context, bucket, policy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return ErrBucketNotFound
	}
	b.policy = policy
	return nil
}

// BucketPolicy returns the policy last set on bucket.
func (m *MemoryStore) BucketPolicy(bucket string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.buckets[bucket]; ok {
		return b.policy
	}
	return ""
}

func (m *MemoryStore) lookup(bucket, key string) (memoryObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return memoryObject{}, ErrObjectNotFound
	}
	obj, ok := b.objects[key]
	if !ok {
		return memoryObject{}, ErrObjectNotFound
	}
	return obj, nil
}

// StatObject returns object metadata.
func (m *MemoryStore) StatObject(_ context.Context, bucket, key string) (ObjectInfo, error) {
	obj, err := m.lookup(bucket, key)
	if err != nil {
		return ObjectInfo{}, err
	}
	return obj.info, nil
}

// GetObject returns a reader over a snapshot of the object.
func (m *MemoryStore) GetObject(_ context.Context, bucket, key string) (*Object, error) {
	obj, err := m.lookup(bucket, key)
	if err != nil {
		return nil, err
	}
	return &Object{Info: obj.info, Body: io.NopCloser(bytes.NewReader(obj.data))}, nil
}

// PutObject reads body fully and stores it. The size argument is ignored.
func (m *MemoryStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sum := md5.Sum(data)
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[bucket]
	if !ok {
		return ErrBucketNotFound
	}
	b.objects[key] = memoryObject{
		data: data,
		info: ObjectInfo{
			Key:          key,
			Size:         int64(len(data)),
			ContentType:  contentType,
			ETag:         hex.EncodeToString(sum[:]),
			LastModified: time.Now().UTC(),
		},
	}
	return nil
}

// PresignedPutObject returns a memory:// URL carrying the method and expiry.
func (m *MemoryStore) PresignedPutObject(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return m.presign("PUT", bucket, key, expiry)
}

// PresignedGetObject returns a memory:// URL carrying the method and expiry.
func (m *MemoryStore) PresignedGetObject(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return m.presign("GET", bucket, key, expiry)
}

func (m *MemoryStore) presign(method, bucket, key string, expiry time.Duration) (string, error) {
	if ok, _ := m.BucketExists(context.Background(), bucket); !ok {
		return "", ErrBucketNotFound
	}
	u := url.URL{
		Scheme: "memory",
		Host:   bucket,
		Path:   "/" + key,
		RawQuery: url.Values{
			"method":  {method},
			"expires": {strconv.Itoa(int(expiry.Seconds()))},
		}.Encode(),
	}
	return u.String(), nil
}

var _ ObjectStore = (*MemoryStore)(nil)
