package repository

import "context"

// CacheRepository stores serialized schedules keyed by an input hash.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
