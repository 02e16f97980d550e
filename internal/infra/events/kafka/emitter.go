// Package kafka publishes activity summaries to a Kafka topic for
// downstream alerting and analytics consumers.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/gcavalcante/walletfolio/internal/portfolio"

	kafka "github.com/segmentio/kafka-go"
)

type emitter struct {
	writer *kafka.Writer
}

var _ portfolio.ActivityNotifier = (*emitter)(nil)

// NewEmitter creates a notifier that writes to the given topic. Messages
// are keyed by wallet address so one wallet's events stay ordered within
// a partition.
func NewEmitter(topic string, brokers ...string) *emitter {
	return &emitter{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NotifyActivity implements the portfolio.ActivityNotifier interface.
func (e *emitter) NotifyActivity(ctx context.Context, summary portfolio.ActivitySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(summary.Address),
		Value: payload,
	})
}

func (e *emitter) Close() error {
	return e.writer.Close()
}
