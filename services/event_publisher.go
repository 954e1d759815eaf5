package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"hotel-storefront/logger"
)

const (
	EventBookingSubmitted = "booking.submitted"
	EventRoomCheckedOut   = "room.checked_out"
)

// Event is one storefront fact handed to downstream consumers.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AMQPPublisher opens a connection per publish into a durable queue.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   logger.Logger
}

func NewAMQPPublisher(url, queue string, log logger.Logger) *AMQPPublisher {
	if log == nil {
		log = logger.Discard()
	}
	return &AMQPPublisher{URL: url, Queue: queue, Log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Error("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Error("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		p.Log.Error("rabbitmq: queue declare %s failed: %v", p.Queue, err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
	if err != nil {
		p.Log.Error("rabbitmq: publish %s failed: %v", ev.Type, err)
		return err
	}
	p.Log.Debug("rabbitmq: published %s", ev.Type)
	return nil
}

// publish never fails the caller's operation.
func publish(ctx context.Context, p EventPublisher, log logger.Logger, typ string, payload interface{}) {
	if p == nil {
		return
	}
	ev := Event{Type: typ, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn("events: %s not published: %v", typ, err)
	}
}
