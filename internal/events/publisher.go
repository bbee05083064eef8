// Package events publishes order lifecycle events for out-of-band
// consumers (kitchen displays, ops tooling). Publishing is
// fire-and-forget: a broker problem is logged and never fails the
// interaction that produced the event.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types carried on the queue.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
)

// Queue is the durable queue order events are published to.
const Queue = "order_events"

// Publisher is implemented by the AMQP client and by Nop.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(eventType string, payload any) {}

type envelope struct {
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// AMQP publishes JSON envelopes to the order_events queue.
type AMQP struct{ conn *amqp.Connection }

func NewAMQP(url string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		Queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &AMQP{conn: conn}, nil
}

func (p *AMQP) Close() error { return p.conn.Close() }

func (p *AMQP) Publish(eventType string, payload any) {
	body, err := json.Marshal(envelope{Type: eventType, At: time.Now().UTC(), Payload: payload})
	if err != nil {
		log.Printf("[events] marshal %s failed: %v", eventType, err)
		return
	}
	ch, err := p.conn.Channel()
	if err != nil {
		log.Printf("[events] channel for %s failed: %v", eventType, err)
		return
	}
	defer ch.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",    // exchange
		Queue, // routing key (queue name)
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		log.Printf("[events] publish %s failed: %v", eventType, err)
	}
}
