package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/config"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

const (
	TopicProfileEvents = "profile.events"
)

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events', keyed by user so one user's events stay ordered
	profileWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicProfileEvents,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		logger:              log,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, evt service.ProfileEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID.String()),
		Value: payload,
		Time:  evt.OccurredAt,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close profile events writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// DecodeProfileEvent parses a message value written by PublishProfileEvent.
func DecodeProfileEvent(value []byte) (service.ProfileEvent, error) {
	var evt service.ProfileEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return evt, fmt.Errorf("decode profile event: %w", err)
	}
	if evt.EventType == "" {
		return evt, fmt.Errorf("decode profile event: missing event_type")
	}
	return evt, nil
}
