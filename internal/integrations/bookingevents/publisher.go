package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher отправляет события изменения записей в Kafka.
// Ключ сообщения - tenant_id, чтобы события тенанта шли в одну партицию по порядку.
type Publisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

// NewKafkaWriter создает writer для топика событий
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewPublisher(writer MessageWriter, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic, now: time.Now}
}

// Publish отправляет событие. Пустые EventID и OccurredAt заполняются.
func (p *Publisher) Publish(ctx context.Context, event AppointmentChanged) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.TenantID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(event.EventID)},
			{Key: headerEventType, Value: []byte(EventTypeAppointmentChanged)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: write: %v", ErrPublish, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka не настроена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AppointmentChanged) error { return nil }
