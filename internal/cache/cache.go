// Package cache defines the content-addressed cache backend collaborator
// a pipeline run consults to skip re-executing a transformer chain whose
// cache key it has seen before.
package cache

import "io"

// Backend stores opaque, content-addressed blobs keyed by a cache key.
// A real backend persists to disk or a remote store; tcore depends only
// on this narrow seam.
type Backend interface {
	// Get returns the deserialized value stored under key, or ok=false
	// if absent.
	Get(key string) (value []byte, ok bool, err error)

	// GetStream returns a streaming reader for the blob stored under key.
	GetStream(key string) (io.ReadCloser, error)

	// GetBlob returns the full blob stored under key.
	GetBlob(key string) ([]byte, error)

	// Set stores value under key, along with whatever separate
	// content/AST blobs it contains.
	Set(key string, value []byte) error
}
