package repository

import (
	"context"
	"time"
)

// TokenRevocationStore remembers revoked access token ids until they expire
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
