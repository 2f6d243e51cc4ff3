package publisher

import (
	"context"
	"log/slog"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// DefaultKafkaSubscriber hands consumed notification events to the mail
// dispatcher as raw messages; decoding happens at the consumer.
type DefaultKafkaSubscriber struct {
	brokers []string
}

func NewDefaultKafkaSubscriber(brokers []string) *DefaultKafkaSubscriber {
	return &DefaultKafkaSubscriber{brokers: brokers}
}

// Subscribe starts a consumer-group reader and returns its message channel.
// The channel closes when the broker connection is lost; the caller decides
// whether to resubscribe.
func (k *DefaultKafkaSubscriber) Subscribe(topic, groupID string) (<-chan domain.Message, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
	})

	out := make(chan domain.Message)
	go func() {
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(context.Background())
			if err != nil {
				slog.Warn("notification consumer stopped",
					"topic", topic, "group", groupID, "err", err)
				close(out)
				return
			}
			out <- domain.Message{Key: m.Key, Value: m.Value}
		}
	}()
	return out, nil
}
