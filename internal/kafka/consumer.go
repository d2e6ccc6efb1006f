package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// Consumer pulls buzz envelopes from a Kafka topic through a consumer group.
// It implements consume.MessageConsumer.
type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

// NewConsumer creates a Kafka-backed message consumer.
func NewConsumer(brokers []string, topic, groupID string, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
	})

	return &Consumer{
		reader: reader,
		logger: logger,
	}
}

// Fetch blocks until the next message arrives or ctx is cancelled.
// ReadMessage commits the offset as part of the consumer group, so a message
// is delivered at most once; skipping undecodable payloads is the caller's
// concern.
func (c *Consumer) Fetch(ctx context.Context) (model.Envelope, error) {
	message, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("read message: %w", err)
	}

	return model.Envelope{
		Value:  message.Value,
		Offset: message.Offset,
	}, nil
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	c.logger.Info("closing kafka consumer")
	return c.reader.Close()
}
