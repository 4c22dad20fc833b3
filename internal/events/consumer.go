package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Consumer struct {
	reader *kafka.Reader
	log    *logrus.Logger
}

func NewConsumer(brokerURL, topic, groupID string, log *logrus.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{brokerURL},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	return &Consumer{
		reader: reader,
		log:    log,
	}
}

// ReadEvent blocks until the next ad event arrives.
func (c *Consumer) ReadEvent(ctx context.Context) (AdEvent, error) {
	message, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return AdEvent{}, fmt.Errorf("failed to read message: %w", err)
	}

	var ev AdEvent
	if err := json.Unmarshal(message.Value, &ev); err != nil {
		return AdEvent{}, fmt.Errorf("failed to decode ad event: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"key":       string(message.Key),
		"kind":      ev.Kind,
		"partition": message.Partition,
		"offset":    message.Offset,
	}).Debug("read ad event")

	return ev, nil
}

func (c *Consumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
