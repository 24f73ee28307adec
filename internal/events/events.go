// Package events publishes geo-tracking record changes to a Redis stream
// so downstream consumers (live maps, visit reports) can follow ingestion
// without polling the database.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/geotracking/internal/domain"
)

// StreamRecordEvents is the stream every record event is appended to.
const StreamRecordEvents = "geo-tracking:events"

// SchemaVersionV1 tags the payload layout of RecordEvent.
const SchemaVersionV1 = "v1"

// streamMaxLen caps the stream length (approximately) so it never grows unbounded.
const streamMaxLen = 10000

// Kind is what happened to the record.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
)

// RecordEvent is the message written for each successful insert or update.
type RecordEvent struct {
	EventID    string    `json:"event_id"`
	Kind       Kind      `json:"kind"`
	RecordID   int64     `json:"record_id"`
	UserID     int64     `json:"user_id"`
	Latitude   string    `json:"latitude"`
	Longitude  string    `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecordEvent builds the event for rec with a fresh event id.
func NewRecordEvent(kind Kind, rec domain.Record, occurredAt time.Time) RecordEvent {
	return RecordEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		RecordID:   rec.ID,
		UserID:     rec.UserID,
		Latitude:   rec.Latitude.String(),
		Longitude:  rec.Longitude.String(),
		RecordedAt: rec.RecordedAt,
		OccurredAt: occurredAt,
	}
}

// Publisher appends record events to a Redis stream.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher connects to the Redis instance at redisURL.
func NewPublisher(redisURL string) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("events.NewPublisher: parse redis URL: %w", err)
	}
	return NewPublisherFromClient(redis.NewClient(opts)), nil
}

// NewPublisherFromClient wraps an existing client.
func NewPublisherFromClient(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish appends ev to StreamRecordEvents and returns the stream entry id.
func (p *Publisher) Publish(ctx context.Context, ev RecordEvent) (string, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("events.Publisher.Publish: marshal: %w", err)
	}

	id, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamRecordEvents,
		MaxLen: streamMaxLen,
		Approx: true,
		ID:     "*",
		Values: map[string]any{
			"kind":           string(ev.Kind),
			"record_id":      ev.RecordID,
			"payload":        string(payload),
			"schema_version": SchemaVersionV1,
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("events.Publisher.Publish: xadd: %w", err)
	}
	return id, nil
}

// Ping checks the Redis connection.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

// NopPublisher discards events. Used when no Redis URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, RecordEvent) (string, error) { return "", nil }
