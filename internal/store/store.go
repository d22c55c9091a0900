// Package store provides the key-value persistence collaborator used for
// cache persistence, profile data and application history.
package store

import (
	"context"
	"errors"
)

// ErrQuotaExceeded reports that the backing storage is full. Callers are
// expected to tolerate it (typically by clearing their data) rather than
// treat it as fatal.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is the persistence contract. A missing key is not an error: Get
// reports presence through its second return value.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
