package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FarmPulse/internal/domain/repository"
	pkgkafka "FarmPulse/pkg/kafka"
)

// KafkaNotifier publishes admin notifications to the notification topic.
// Consumers (SMS gateway, ops dashboards) are downstream of this service.
type KafkaNotifier struct {
	producer *pkgkafka.Producer
}

func NewKafkaNotifier(producer *pkgkafka.Producer) repository.Notifier {
	return &KafkaNotifier{producer: producer}
}

type notification struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notify publishes one notification keyed by kind so notifications of the
// same kind land on the same partition in order.
func (n *KafkaNotifier) Notify(ctx context.Context, kind, message string) error {
	b, err := json.Marshal(notification{Kind: kind, Message: message, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return n.producer.Publish(ctx, []byte(kind), b)
}

func (n *KafkaNotifier) Close() error {
	if n.producer != nil {
		return n.producer.Close()
	}
	return nil
}
