package app

import "context"

// KeyValueStore is device-local string storage.
// Get returns domain.ErrNotFound for a missing key; Set may fail with
// domain.ErrQuotaExceeded.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
