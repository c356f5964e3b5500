package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler receives one decoded survey event. Returning an error nacks
// the message so it is redelivered.
type EventHandler func(ctx context.Context, event SurveyEvent) error

// EventSubscriber reads survey events back, e.g. for a tail command or a
// downstream notifier.
type EventSubscriber struct {
	subscriber message.Subscriber
	logger     *slog.Logger
	topicName  string
}

type SubscriberConfig struct {
	KafkaBrokers  []string
	TopicName     string
	ConsumerGroup string
	Logger        *slog.Logger
}

func NewKafkaEventSubscriber(config SubscriberConfig) (*EventSubscriber, error) {
	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               config.KafkaBrokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		ConsumerGroup:         config.ConsumerGroup,
		OverwriteSaramaConfig: kafka.DefaultSaramaSubscriberConfig(),
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}

	return newWatermillSubscriber(subscriber, config.TopicName, config.Logger), nil
}

func newWatermillSubscriber(subscriber message.Subscriber, topic string, logger *slog.Logger) *EventSubscriber {
	return &EventSubscriber{
		subscriber: subscriber,
		logger:     logger,
		topicName:  topic,
	}
}

// Run consumes until ctx is done. Undecodable messages are acked and dropped.
func (s *EventSubscriber) Run(ctx context.Context, handler EventHandler) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topicName)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.topicName, err)
	}

	for msg := range messages {
		event, err := fromMessage(msg)
		if err != nil {
			s.logger.Warn("Dropping undecodable survey event",
				"message_uuid", msg.UUID,
				"error", err)
			msg.Ack()
			continue
		}

		if err := handler(msg.Context(), event); err != nil {
			s.logger.Error("Survey event handler failed",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err)
			msg.Nack()
			continue
		}
		msg.Ack()
	}

	return ctx.Err()
}

func (s *EventSubscriber) Close() error {
	return s.subscriber.Close()
}

func fromMessage(msg *message.Message) (SurveyEvent, error) {
	var event SurveyEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return SurveyEvent{}, fmt.Errorf("failed to unmarshal survey event: %w", err)
	}
	if event.Type == "" {
		event.Type = EventType(msg.Metadata.Get("event_type"))
	}
	return event, nil
}
