package service

import (
	"context"
	"time"
)

// SessionStore remembers signed-out token ids until the token would have expired.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
