// Package session maps opaque admin tokens to admin ids. Tokens are issued
// at login, checked on every protected request and revocable at logout.
package session

import (
	"context"
	"time"
)

type Store interface {
	// Issue mints a fresh opaque token for the admin.
	Issue(ctx context.Context, adminID int64) (string, error)
	// Validate resolves a token to its admin id. ok is false for tokens
	// that are missing, expired or revoked; the caller does not get to
	// distinguish the three.
	Validate(ctx context.Context, token string) (adminID int64, ok bool, err error)
	// Revoke drops the token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}

// DefaultTTL is used when the configured TTL is zero or negative.
const DefaultTTL = 24 * time.Hour

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
