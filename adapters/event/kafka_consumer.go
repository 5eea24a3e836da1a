package event

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/config"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

const (
	defaultRetryBackoff = 500 * time.Millisecond
	defaultMaxBackoff   = 30 * time.Second
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ProfileEventHandler func(ctx context.Context, evt service.ProfileEvent) error

func NewProfileEventsReader(cfg config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicProfileEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
}

// ProfileEventConsumer feeds profile events to a handler one at a time. Group
// offsets are per partition, so a failed message is retried in place; moving on
// and committing a later offset would skip it for good.
type ProfileEventConsumer struct {
	reader       MessageReader
	handle       ProfileEventHandler
	logger       logger.Logger
	retryBackoff time.Duration
	maxBackoff   time.Duration
}

func NewProfileEventConsumer(reader MessageReader, handle ProfileEventHandler, log logger.Logger) *ProfileEventConsumer {
	return &ProfileEventConsumer{
		reader:       reader,
		handle:       handle,
		logger:       log,
		retryBackoff: defaultRetryBackoff,
		maxBackoff:   defaultMaxBackoff,
	}
}

// Run consumes until ctx is cancelled.
func (c *ProfileEventConsumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to read message from Kafka", err)
			if !sleep(ctx, c.retryBackoff) {
				return
			}
			continue
		}

		evt, err := DecodeProfileEvent(msg.Value)
		if err != nil {
			c.logger.Warn("Malformed profile event, skipping",
				zap.String("key", string(msg.Key)),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			c.commit(ctx, msg)
			continue
		}

		if !c.process(ctx, evt) {
			return
		}
		c.commit(ctx, msg)
	}
}

// process retries the handler with doubling backoff. It reports false only when ctx
// ends first, leaving the message uncommitted.
func (c *ProfileEventConsumer) process(ctx context.Context, evt service.ProfileEvent) bool {
	backoff := c.retryBackoff
	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, evt)
		if err == nil {
			return true
		}
		c.logger.Error("Failed to handle profile event, retrying", err,
			zap.String("event_id", evt.EventID.String()),
			zap.String("user_id", evt.UserID.String()),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
		)
		if !sleep(ctx, backoff) {
			return false
		}
		backoff = min(backoff*2, c.maxBackoff)
	}
}

func (c *ProfileEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
