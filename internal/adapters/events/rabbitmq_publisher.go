package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DocumentEventsQueue receives every published document lifecycle event.
const DocumentEventsQueue = "dustbill.document_events"

// RabbitMQPublisher publishes document events to a durable queue on the default exchange.
type RabbitMQPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

var _ gateways.EventPublisher = (*RabbitMQPublisher)(nil)

// NewRabbitMQPublisher dials url and declares the events queue.
func NewRabbitMQPublisher(url string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}
	p := &RabbitMQPublisher{conn: conn, queue: DocumentEventsQueue}
	if err := p.openChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func (p *RabbitMQPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}
	p.ch = ch
	return nil
}

// Publish sends event as a persistent JSON message. A closed channel is reopened once.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.openChannel(); err != nil {
			return err
		}
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}

func newPublishing(event domain.DocumentEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

// LogPublisher is used when no broker is configured. It only logs the event.
type LogPublisher struct {
	logger *slog.Logger
}

var _ gateways.EventPublisher = LogPublisher{}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger}
}

func (p LogPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	if p.logger != nil {
		p.logger.DebugContext(ctx, "Document event",
			slog.String("type", string(event.Type)),
			slog.String("document_id", event.DocumentID))
	}
	return nil
}
