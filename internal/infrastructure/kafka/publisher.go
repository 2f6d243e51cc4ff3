package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// NotificationTopic carries outbound email events consumed by the mail
// dispatcher.
const NotificationTopic = "notification-events"

type NotificationEvent struct {
	Kind      string    `json:"kind"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification event kinds.
const (
	KindVerifyEmail     = "verify_email"
	KindResendVerify    = "resend_verification"
	KindVerifyNewEmail  = "verify_new_email"
	KindDonationReceipt = "donation_receipt"
)

// NotificationPublisher is what the usecases depend on.
type NotificationPublisher interface {
	PublishNotification(event NotificationEvent) error
}

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(context.Background(), km...)
}

func (k *DefaultKafkaPublisher) PublishNotification(event NotificationEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(NotificationTopic, domain.Message{Key: []byte(event.Recipient), Value: v})
}
