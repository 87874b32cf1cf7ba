// Package settings is the key/value store behind user preferences and
// other small client state such as the key derivation salt.
package settings

import (
	"context"
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) for
// a key that was never set.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
