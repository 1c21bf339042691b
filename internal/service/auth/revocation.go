package auth

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RevocationList records refresh token IDs (jti) that must no longer be accepted.
// Entries only need to outlive the token's own expiry.
type RevocationList interface {
	// Revoke marks tokenID as revoked until the given time.
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	// RevokeIfNew atomically revokes tokenID and reports whether this call
	// did so. It returns false when tokenID was already revoked, which makes
	// it suitable for single-use tokens.
	RevokeIfNew(ctx context.Context, tokenID string, until time.Time) (bool, error)

	// IsRevoked reports whether tokenID is currently revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryRevocationList is a process-local RevocationList.
// It is used when no Redis URL is configured.
type MemoryRevocationList struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	entries map[string]time.Time
}

// NewMemoryRevocationList creates an empty list. A nil clock uses the real clock.
func NewMemoryRevocationList(clock clockwork.Clock) *MemoryRevocationList {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryRevocationList{
		clock:   clock,
		entries: make(map[string]time.Time),
	}
}

var _ RevocationList = (*MemoryRevocationList)(nil)

// Revoke implements RevocationList. Entries whose until has passed are pruned.
func (l *MemoryRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.pruneLocked(now)
	if until.After(now) {
		l.entries[tokenID] = until
	}
	return nil
}

// RevokeIfNew implements RevocationList. The check and the insert happen
// under the same lock.
func (l *MemoryRevocationList) RevokeIfNew(_ context.Context, tokenID string, until time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.pruneLocked(now)
	if _, revoked := l.entries[tokenID]; revoked {
		return false, nil
	}
	if until.After(now) {
		l.entries[tokenID] = until
	}
	return true, nil
}

// pruneLocked drops entries whose expiry has passed. l.mu must be held.
func (l *MemoryRevocationList) pruneLocked(now time.Time) {
	for id, exp := range l.entries {
		if !exp.After(now) {
			delete(l.entries, id)
		}
	}
}

// IsRevoked implements RevocationList.
func (l *MemoryRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(l.clock.Now()) {
		delete(l.entries, tokenID)
		return false, nil
	}
	return true, nil
}
