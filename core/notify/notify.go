package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Status is the outcome carried by an Event.
type Status string

const (
	// StatusCompleted marks a recompute that finished and stored its result.
	StatusCompleted Status = "completed"
	// StatusFailed marks a recompute that returned an error.
	StatusFailed Status = "failed"
	// StatusCancelled marks a recompute stopped before completion.
	StatusCancelled Status = "cancelled"
)

// Event describes the end of one recompute.
type Event struct {
	Key    string    `json:"key"`
	Name   string    `json:"name,omitempty"`
	Result int       `json:"result"`
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher delivers events.
type Publisher interface {
	// Publish sends an event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event Event) error

	// Close releases the underlying connection.
	Close() error
}

// New returns a Redis publisher when cfg.RedisURL is set, otherwise a log-only publisher.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	if cfg.RedisURL == "" {
		return NewLogPublisher(logger), nil
	}
	return NewRedisPublisher(cfg, logger)
}

// RedisPublisher publishes events to a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(cfg Config, logger *zap.Logger) (*RedisPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.DialTimeout = timeout
	opts.WriteTimeout = timeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	channel := cfg.Channel
	if channel == "" {
		channel = "trolley.recompute"
	}

	return &RedisPublisher{client: client, channel: channel, timeout: timeout, logger: logger}, nil
}

// Publish sends the event as JSON to the configured channel.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", p.channel, err)
	}

	p.logger.Debug("Published recompute event", zap.String("key", event.Key), zap.String("status", string(event.Status)))
	return nil
}

// Channel returns the channel events are published to.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Close closes the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// LogPublisher writes events to the logger only.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a log-only publisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Info("Recompute event",
		zap.String("key", event.Key),
		zap.String("name", event.Name),
		zap.Int("result", event.Result),
		zap.String("status", string(event.Status)),
		zap.String("error", event.Error),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error {
	return nil
}
