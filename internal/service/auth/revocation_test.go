package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(fixedTime)
	l := NewMemoryRevocationList(clock)
	ctx := context.Background()

	revoked, err := l.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, l.Revoke(ctx, "jti-1", fixedTime.Add(time.Hour)))
	revoked, err = l.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock.Advance(time.Hour)
	revoked, err = l.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token's expiry")

	require.NoError(t, l.Revoke(ctx, "jti-2", fixedTime))
	revoked, err = l.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")
}

func TestMemoryRevocationList_Concurrent(t *testing.T) {
	t.Parallel()

	l := NewMemoryRevocationList(nil)
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = l.Revoke(ctx, id, until)
			_, _ = l.IsRevoked(ctx, id)
		}(i)
	}
	wg.Wait()

	revoked, err := l.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRevocationList_RevokeIfNew(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(fixedTime)
	l := NewMemoryRevocationList(clock)
	ctx := context.Background()
	until := fixedTime.Add(time.Hour)

	claimed, err := l.RevokeIfNew(ctx, "jti-1", until)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = l.RevokeIfNew(ctx, "jti-1", until)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim of the same jti")

	revoked, err := l.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock.Advance(time.Hour)
	claimed, err = l.RevokeIfNew(ctx, "jti-1", clock.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed, "lapsed entries can be claimed again")
}

func TestMemoryRevocationList_RevokeIfNewConcurrent(t *testing.T) {
	t.Parallel()

	l := NewMemoryRevocationList(nil)
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	const callers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claims  int
		startCh = make(chan struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-startCh
			ok, err := l.RevokeIfNew(ctx, "shared", until)
			if err == nil && ok {
				mu.Lock()
				claims++
				mu.Unlock()
			}
		}()
	}
	close(startCh)
	wg.Wait()

	assert.Equal(t, 1, claims)
}
