package config

import (
	"log/slog"
	"strings"

	"github.com/rehber-app/anket-client/internal/events"
)

// EventConfig holds configuration for survey event publishing
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka or mock
	KafkaBrokers string
	SurveyTopic  string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.SurveyTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.SurveyTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

// CreateEventSubscriber opens a Kafka consumer on the survey topic.
func (c *EventConfig) CreateEventSubscriber(consumerGroup string, logger *slog.Logger) (*events.EventSubscriber, error) {
	logger.Info("Creating Kafka event subscriber",
		"brokers", c.KafkaBrokers,
		"topic", c.SurveyTopic,
		"consumer_group", consumerGroup)

	return events.NewKafkaEventSubscriber(events.SubscriberConfig{
		KafkaBrokers:  c.GetKafkaBrokers(),
		TopicName:     c.SurveyTopic,
		ConsumerGroup: consumerGroup,
		Logger:        logger,
	})
}
