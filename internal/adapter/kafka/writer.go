// Package kafka publishes converted campaigns to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces campaign messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes every campaign in a single WriteMessages
// call. Messages are keyed by slot so a topic compacts to the latest
// version of each month.
func (w *Writer) Publish(ctx context.Context, campaigns []domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(campaigns))
	for i := range campaigns {
		msg, err := serializeToMessage(campaigns[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish campaigns: %w", err)
	}
	w.logger.Info("campaigns published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Campaign into a Kafka message.
func serializeToMessage(c domain.Campaign) (kafkago.Message, error) {
	data, err := domain.CampaignJSON(c)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize campaign %s: %w", c.Key(), err)
	}
	return kafkago.Message{
		Key:   []byte(c.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "year", Value: []byte(strconv.Itoa(c.Year))},
			{Key: "month", Value: []byte(c.Month)},
			{Key: "tipo", Value: []byte(c.RawType)},
		},
	}, nil
}
