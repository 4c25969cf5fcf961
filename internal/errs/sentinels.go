// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/gateway/service layers.
var (
	// ErrNotFound indicates the referenced comment id is absent from the tree.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSnapshot indicates a candidate snapshot failed structural validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrInvalidContent indicates comment content failed boundary validation.
	ErrInvalidContent = errors.New("invalid content")

	// ErrSaveFailed indicates the blob store rejected or failed a write.
	ErrSaveFailed = errors.New("save failed")

	// ErrBlobNotFound indicates no value is stored under the requested blob key.
	ErrBlobNotFound = errors.New("blob not found")
)
