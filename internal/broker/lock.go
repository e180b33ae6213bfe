// Package broker holds the Redis-backed pieces shared between instances: the
// ingestion run lock, the ingestion event publisher, and the cached category
// aggregation.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RunLockKey is the key guarding ingestion runs across instances.
const RunLockKey = "dwa:ingest:lock"

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RunLock is a SET NX PX lock. The TTL bounds how long a crashed holder
// can block other instances.
type RunLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRunLock returns a lock on RunLockKey expiring after ttl.
func NewRunLock(rdb *redis.Client, ttl time.Duration) *RunLock {
	return &RunLock{rdb: rdb, key: RunLockKey, ttl: ttl}
}

// Acquire takes the lock. ok is false when another holder has it.
func (l *RunLock) Acquire(ctx context.Context) (release func(), ok bool, err error) {
	token := uuid.NewString()
	ok, err = l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Err(); err != nil {
			slog.Warn("release run lock failed", "key", l.key, "err", err)
		}
	}
	return release, true, nil
}
