package storage

import "errors"

// ErrBucketNotFound is returned when an operation targets a missing bucket.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store. Values passed to Put and returned
// by Get are copies.
type Backend interface {
	// CreateBucket is idempotent.
	CreateBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil, nil for a missing key.
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error

	// ForEach visits keys in ascending byte order. v is only valid during fn.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}
