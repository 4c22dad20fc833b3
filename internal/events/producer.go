package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Producer publishes ad events. A nil Producer is valid and drops
// everything, so callers need no broker in local setups.
type Producer struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

func NewProducer(brokerURL, topic string, log *logrus.Logger) *Producer {
	if brokerURL == "" {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerURL),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		log: log,
	}
}

// Publish writes one event, keyed by ad space so per-space ordering is
// preserved across partitions. Failures are logged, never propagated:
// analytics must not break the serving path.
func (p *Producer) Publish(ctx context.Context, ev AdEvent) {
	if p == nil {
		return
	}

	value, err := json.Marshal(ev)
	if err != nil {
		p.log.WithError(err).Error("failed to marshal ad event")
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.AdSpaceID, 10)),
		Value: value,
	})
	if err != nil {
		p.log.WithError(err).Error("failed to write ad event to Kafka")
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
