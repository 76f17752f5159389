// Package events publishes order events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/phenrril/fightshop/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderPlacedEvent is the payload written for each new order, keyed by order number.
type OrderPlacedEvent struct {
	Type        string             `json:"type"`
	OrderNumber string             `json:"orderNumber"`
	OwnerID     string             `json:"ownerId"`
	Status      domain.OrderStatus `json:"status"`
	Total       int64              `json:"total"`
	Items       []domain.OrderItem `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type Publisher struct {
	w messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

func (p *Publisher) OrderPlaced(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(OrderPlacedEvent{
		Type:        "order.placed",
		OrderNumber: o.Number,
		OwnerID:     o.OwnerID,
		Status:      o.Status,
		Total:       o.Total,
		Items:       o.Items,
		CreatedAt:   o.CreatedAt,
	})
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(o.Number), Value: payload}); err != nil {
		return fmt.Errorf("publish order %s: %w", o.Number, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
