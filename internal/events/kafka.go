package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaConfig selects the brokers and the topic of each event type.
type KafkaConfig struct {
	Brokers       []string
	AlertTopic    string
	ReminderTopic string
	// AppointmentTopic defaults to "appointments".
	AppointmentTopic string
}

// KafkaPublisher writes JSON events through one writer, routing each event
// type to its topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	topics map[string]string
	logger zerolog.Logger
}

// NewKafkaPublisher builds the producer. Connections are opened lazily on the
// first write.
func NewKafkaPublisher(cfg KafkaConfig, logger zerolog.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	appointments := cfg.AppointmentTopic
	if appointments == "" {
		appointments = "appointments"
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	logger.Info().Strs("brokers", cfg.Brokers).Msg("kafka producer created")
	return &KafkaPublisher{
		writer: writer,
		topics: map[string]string{
			TypeMeasurementAlert:  cfg.AlertTopic,
			TypeReminderDue:       cfg.ReminderTopic,
			TypeAppointmentStatus: appointments,
		},
		logger: logger,
	}, nil
}

// TopicFor returns the topic an event type is routed to.
func (p *KafkaPublisher) TopicFor(typ string) string {
	return p.topics[typ]
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	topic := p.topics[e.Type]
	if topic == "" {
		return fmt.Errorf("kafka: no topic for event %q", e.Type)
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: encode %s: %w", e.Type, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(e.Key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka: publish %s: %w", e.Type, err)
	}
	p.logger.Debug().Str("topic", topic).Str("key", e.Key).Msg("event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
