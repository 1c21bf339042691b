// Package redis provides the Redis-backed refresh token revocation list and
// the client hooks that report command metrics.
package redis
