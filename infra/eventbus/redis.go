package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventBus publishes events to one Redis stream per event type and
// consumes them through a consumer group per type. Handler failures are
// pushed to a dead-letter stream.
type RedisEventBus struct {
	client     *redis.Client
	prefix     string
	factories  map[string]func() events.Event
	logger     *slog.Logger
	block      time.Duration
	retryDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis creates a Redis-backed event bus on an existing client.
// prefix is prepended to every stream and group name.
func NewWithRedis(client *redis.Client, prefix string, logger *slog.Logger) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:     client,
		prefix:     prefix,
		factories:  events.Factories(),
		logger:     logger.With("component", "redis-event-bus"),
		block:      5 * time.Second,
		retryDelay: time.Second,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Emit publishes an event to its type's stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}
	env, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamNameFor(b.prefix, event.Type()),
		Values: map[string]any{"event": string(env)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register starts a consumer goroutine for eventType. It runs until Close.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	if err := b.ensureGroup(b.ctx, eventType); err != nil {
		b.logger.Error("failed to create consumer group", "error", err, "event_type", eventType)
		return
	}
	consumer := fmt.Sprintf("consumer-%s", uuid.NewString())
	b.logger.Info("registering handler", "event_type", eventType, "consumer", consumer)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for b.ctx.Err() == nil {
			if _, err := b.poll(b.ctx, eventType, consumer, handler, b.block); err != nil {
				if b.ctx.Err() != nil {
					return
				}
				b.logger.Error("error reading from stream", "error", err, "consumer", consumer)
				select {
				case <-b.ctx.Done():
					return
				case <-time.After(b.retryDelay):
				}
			}
		}
	}()
}

// Close stops every consumer and waits for them to exit.
func (b *RedisEventBus) Close() {
	b.cancel()
	b.wg.Wait()
}

func (b *RedisEventBus) ensureGroup(ctx context.Context, eventType string) error {
	err := b.client.XGroupCreateMkStream(ctx,
		streamNameFor(b.prefix, eventType), groupNameFor(b.prefix, eventType), "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// poll reads one batch for consumer and dispatches it. A negative block
// returns immediately when the stream is empty.
func (b *RedisEventBus) poll(
	ctx context.Context,
	eventType, consumer string,
	handler eventbus.HandlerFunc,
	block time.Duration,
) (int, error) {
	stream := streamNameFor(b.prefix, eventType)
	group := groupNameFor(b.prefix, eventType)
	res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    10,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	handled := 0
	for _, s := range res {
		for _, msg := range s.Messages {
			b.dispatch(ctx, eventType, msg, handler)
			if err := b.client.XAck(ctx, stream, group, msg.ID).Err(); err != nil {
				b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
			}
			handled++
		}
	}
	return handled, nil
}

func (b *RedisEventBus) dispatch(ctx context.Context, eventType string, msg redis.XMessage, handler eventbus.HandlerFunc) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	constructor, ok := b.factories[env.Type]
	if !ok {
		b.logger.Error("unknown event type", "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal payload", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", env.Type)
			b.pushToDLQ(ctx, eventType, msg.Values)
		}
	}()
	if err := handler(ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, eventType, msg.Values)
	}
}

// pushToDLQ stores the raw message on the type's dead-letter stream for
// inspection or reprocessing.
func (b *RedisEventBus) pushToDLQ(ctx context.Context, eventType string, values map[string]any) {
	dlq := dlqStreamName(b.prefix, eventType)
	if err := b.client.XAdd(ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
