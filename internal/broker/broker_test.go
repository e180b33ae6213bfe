package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/ingest"
)

// unreachable returns a client pointed at a closed port so every command
// fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestEventPayload(t *testing.T) {
	b, err := eventPayload(ingest.Summary{RunID: "run-1", Inserted: 3, Updated: 1})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, EventJobsIngested, got["type"])
	assert.Equal(t, "run-1", got["runId"])
	assert.EqualValues(t, 3, got["inserted"])
	assert.EqualValues(t, 1, got["updated"])
}

func TestRunLock_RedisDown(t *testing.T) {
	release, ok, err := NewRunLock(unreachable(t), time.Minute).Acquire(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, release)
}

func TestCategoryCache_RedisDown(t *testing.T) {
	c := NewCategoryCache(unreachable(t), time.Minute)
	ctx := context.Background()

	var dst []string
	found, err := c.Get(ctx, &dst)
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, c.Set(ctx, []string{"a"}))
	assert.Error(t, c.Invalidate(ctx))
}

func TestEvents_RedisDownReturnsError(t *testing.T) {
	rdb := unreachable(t)
	e := NewEvents(rdb, NewCategoryCache(rdb, time.Minute))
	assert.Error(t, e.RunCompleted(context.Background(), ingest.Summary{RunID: "r"}))
}

func TestInterfaces(t *testing.T) {
	var _ ingest.Locker = (*RunLock)(nil)
	var _ ingest.Notifier = (*Events)(nil)
}
