package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"dwa/backend/internal/ingest"
)

// EventJobsIngested is the channel ingestion summaries are published on.
const EventJobsIngested = "EVENT_JOBS_INGESTED"

// Events publishes run summaries and drops the cached category aggregation
// so the next read reflects the new data.
type Events struct {
	rdb   *redis.Client
	cache *CategoryCache
}

// NewEvents returns a publisher. cache may be nil.
func NewEvents(rdb *redis.Client, cache *CategoryCache) *Events {
	return &Events{rdb: rdb, cache: cache}
}

// RunCompleted implements ingest.Notifier.
func (e *Events) RunCompleted(ctx context.Context, s ingest.Summary) error {
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx); err != nil {
			slog.Warn("invalidate category cache failed", "err", err)
		}
	}

	payload, err := eventPayload(s)
	if err != nil {
		return err
	}
	if err := e.rdb.Publish(ctx, EventJobsIngested, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", EventJobsIngested, err)
	}
	return nil
}

func eventPayload(s ingest.Summary) ([]byte, error) {
	b, err := json.Marshal(struct {
		Type string `json:"type"`
		ingest.Summary
	}{Type: EventJobsIngested, Summary: s})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", EventJobsIngested, err)
	}
	return b, nil
}
