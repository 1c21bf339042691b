package shared

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32)

	assert.Empty(t, GetTraceID(ctx), "original context must remain unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceID(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		require.Len(t, id, 32)
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "trace IDs must be unique")
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	a := generateFallbackTraceID()
	time.Sleep(time.Millisecond)
	b := generateFallbackTraceID()

	assert.Len(t, a, 32)
	_, err := hex.DecodeString(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPrincipal(t *testing.T) {
	ctx := context.Background()

	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = RoleFromContext(ctx)
	assert.False(t, ok)

	userID := uuid.New()
	ctx = WithPrincipal(ctx, userID, domain.RoleEmployee)

	got, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	role, ok := RoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, domain.RoleEmployee, role)
}

func TestPrincipal_RejectsNilAndUnknownValues(t *testing.T) {
	ctx := WithPrincipal(context.Background(), uuid.Nil, domain.Role("root"))

	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = RoleFromContext(ctx)
	assert.False(t, ok)
}
