// Package redisevents publishes committed domain events over Redis Pub/Sub.
// Each event goes to the channel "dispatch:<event name>" as JSON.
package redisevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"

	redis "github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "dispatch:"
	publishTimeout = 2 * time.Second
)

func ChannelName(eventName string) string {
	return channelPrefix + eventName
}

type Publisher struct {
	rdb *redis.Client
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher connects to the server at url (redis://...) and pings it.
func NewPublisher(ctx context.Context, url string) (*Publisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Publisher{rdb: rdb}, nil
}

func NewPublisherFromClient(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(event.Name, "error").Inc()
		return fmt.Errorf("marshal event %s: %w", event.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err = p.rdb.Publish(ctx, ChannelName(event.Name), data).Err(); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Name, "error").Inc()
		return fmt.Errorf("publish event %s: %w", event.Name, err)
	}

	metrics.EventsPublished.WithLabelValues(event.Name, "ok").Inc()
	return nil
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}

// LogPublisher is used when no Redis is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, event ports.Event) error {
	p.logger.DebugContext(ctx, "event",
		"name", event.Name,
		"aggregate_id", event.AggregateID,
		"payload", event.Payload,
	)
	metrics.EventsPublished.WithLabelValues(event.Name, "logged").Inc()
	return nil
}
