package session

import (
	"context"
)

// Store is durable key-value persistence for session state. Get of an
// absent key returns (nil, nil). Individual operations carry no cross-key
// transactional guarantee; use Manager for all-or-nothing session writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
