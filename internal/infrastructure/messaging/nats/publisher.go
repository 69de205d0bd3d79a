package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/99minutos/storefront/internal/core/domain"
)

const defaultSubject = "storefront.orders"

// OrderEventPublisher publishes order events as JSON. Each event is sent to
// "<subject>.<event type>", e.g. "storefront.orders.order.created".
type OrderEventPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewOrderEventPublisher(conn *nats.Conn, subject string) (*OrderEventPublisher, error) {
	if conn == nil {
		return nil, errors.New("nats connection cannot be nil")
	}
	if subject == "" {
		subject = defaultSubject
	}
	return &OrderEventPublisher{conn: conn, subject: subject}, nil
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event %s: %w", event.ID, err)
	}

	subject := p.Subject(event)
	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.ID)

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Subject returns the subject an event is published on.
func (p *OrderEventPublisher) Subject(event domain.OrderEvent) string {
	return p.subject + "." + event.Type
}
