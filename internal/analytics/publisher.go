// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/quietwire/securetalk/internal/logging"
)

// Publisher delivers events to a RabbitMQ topic exchange. Delivery is
// fire-and-forget: errors are logged and the event is dropped.
type Publisher struct {
	conn     *amqp091.Connection
	exchange string
}

// ensure Publisher satisfies Sink at compile time
var _ Sink = (*Publisher)(nil)

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, exchange: exchange}, nil
}

// Track implements Sink. The routing key is the event name.
func (p *Publisher) Track(ctx context.Context, e Event) {
	e = stamp(e)
	body, err := json.Marshal(e)
	if err != nil {
		logging.Errorf("analytics: failed to marshal event %s: %v", e.Name, err)
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		logging.Warnf("analytics: failed to open channel: %v", err)
		return
	}
	defer ch.Close()

	err = ch.PublishWithContext(
		ctx, p.exchange, e.Name, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		logging.Warnf("analytics: failed to publish %s: %v", e.Name, err)
		return
	}
	logging.Debugf("analytics: published %s to %s", e.Name, p.exchange)
}

// Close shuts down the broker connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
