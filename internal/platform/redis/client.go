package redis

import (
	"context"
	"fmt"

	"github.com/phrazzld/crud-suite/internal/platform/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client from a URL such as "redis://localhost:6379/0"
// and verifies the connection. A non-nil m installs the metrics hook.
func NewClient(ctx context.Context, redisURL string, m *metrics.Metrics) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	// Pool and timeout settings come from the URL query, e.g. ?dial_timeout=3s
	rdb := goredis.NewClient(opts)
	if m != nil {
		rdb.AddHook(NewMetricsHook(m))
	}

	// Fail at startup rather than on the first refresh
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}
