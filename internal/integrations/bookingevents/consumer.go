package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// Consumer читает события изменения записей и передаёт их обработчику.
// Смещение фиксируется после обработки. Ошибка обработчика логируется,
// сообщение не переигрывается: инвалидация кэша догоняется по TTL.
type Consumer struct {
	reader     MessageReader
	handler    Handler
	log        Logger
	metrics    *metrics.Metrics
	retryDelay time.Duration
}

// NewKafkaReader создает reader группы потребителей
func NewKafkaReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// NewConsumer создает потребителя. m может быть nil.
func NewConsumer(reader MessageReader, handler Handler, log Logger, m *metrics.Metrics) *Consumer {
	return &Consumer{
		reader:     reader,
		handler:    handler,
		log:        log,
		metrics:    m,
		retryDelay: time.Second,
	}
}

// Run читает сообщения до отмены контекста
func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error("Consumer: kafka read error: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryDelay):
			}
			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error("Consumer: kafka commit error offset=%d: %v", msg.Offset, err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	ctxMsg := extractTraceContext(ctx, msg)
	ctxSpan, span := otel.Tracer("kafka").Start(ctxMsg, "kafka.consume",
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
		),
	)
	defer span.End()

	event, err := decode(msg)
	if err != nil {
		c.log.Warn("Consumer: skip malformed message offset=%d: %v", msg.Offset, err)
		span.RecordError(err)
		c.observe("malformed")
		return
	}

	if err := c.handler(ctxSpan, event); err != nil {
		c.log.Error("Consumer: handler error event_id=%s: %v", event.EventID, err)
		span.RecordError(err)
		c.observe("error")
		return
	}
	c.observe("ok")
}

func decode(msg kafka.Message) (AppointmentChanged, error) {
	var event AppointmentChanged
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return AppointmentChanged{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if event.EventID == "" {
		event.EventID = headerValue(msg.Headers, headerEventID)
	}
	if event.TenantID == "" || event.Date == "" {
		return AppointmentChanged{}, fmt.Errorf("%w: tenantId and date are required", ErrDecode)
	}
	return event, nil
}

func (c *Consumer) observe(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.EventsConsumedTotal.WithLabelValues(result).Inc()
}
