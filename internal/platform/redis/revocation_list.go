package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationList stores revoked refresh token IDs as Redis keys that expire
// together with the token, so the list never needs explicit cleanup.
type RevocationList struct {
	rdb   goredis.Cmdable
	clock clockwork.Clock
}

var _ auth.RevocationList = (*RevocationList)(nil)

// NewRevocationList creates a RevocationList. A nil clock uses the real clock.
func NewRevocationList(rdb goredis.Cmdable, clock clockwork.Clock) *RevocationList {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RevocationList{rdb: rdb, clock: clock}
}

// Revoke implements auth.RevocationList. Tokens already past until are ignored.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(l.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := l.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeIfNew implements auth.RevocationList with SET NX, so only one of
// several concurrent callers for the same tokenID gets true.
func (l *RevocationList) RevokeIfNew(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	ttl := until.Sub(l.clock.Now())
	if ttl <= 0 {
		return true, nil
	}
	created, err := l.rdb.SetNX(ctx, revokedKey(tokenID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return created, nil
}

// IsRevoked implements auth.RevocationList.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}
