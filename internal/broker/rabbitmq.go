// Package broker публикует события заказов в RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// OrderCreated уходит в обменник сразу после сохранения заказа.
type OrderCreated struct {
	OrderID         int64           `json:"orderId"`
	OrderNo         string          `json:"orderNo"`
	BuyerID         int64           `json:"buyerId"`
	SellerID        int64           `json:"sellerId"`
	ProductID       int64           `json:"productId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	ContactPhone    string          `json:"contactPhone"`
	CreateTime      time.Time       `json:"createTime"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

type RabbitMQ struct {
	log        *slog.Logger
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

// NewRabbitMQ подключается к брокеру и объявляет topic-обменник.
func NewRabbitMQ(log *slog.Logger, url, exchange, routingKey string) (*RabbitMQ, error) {
	const op = "broker.NewRabbitMQ"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: failed to open channel: %w", op, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: failed to declare exchange: %w", op, err)
	}

	return &RabbitMQ{
		log:        log,
		conn:       conn,
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

func (r *RabbitMQ) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	const op = "broker.RabbitMQ.PublishOrderCreated"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: failed to encode event: %w", op, err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		MessageId:    event.OrderNo,
		Type:         "order.created",
		Body:         body,
	}

	if err := r.channel.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.log.Debug("order event published",
		slog.String("op", op),
		slog.String("order_no", event.OrderNo),
	)
	return nil
}

// Consume объявляет очередь уведомлений, привязывает её к обменнику
// и передаёт в handle каждое событие до отмены ctx.
func (r *RabbitMQ) Consume(ctx context.Context, queue string, handle func(OrderCreated)) error {
	const op = "broker.RabbitMQ.Consume"
	logger := r.log.With(slog.String("op", op), slog.String("queue", queue))

	if _, err := r.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: failed to declare queue: %w", op, err)
	}
	if err := r.channel.QueueBind(queue, r.routingKey, r.exchange, false, nil); err != nil {
		return fmt.Errorf("%s: failed to bind queue: %w", op, err)
	}

	deliveries, err := r.channel.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to consume: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			event, err := DecodeOrderCreated(d.Body)
			if err != nil {
				logger.Warn("dropping malformed event", slog.Any("error", err))
				_ = d.Nack(false, false)
				continue
			}
			handle(event)
			_ = d.Ack(false)
		}
	}
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func DecodeOrderCreated(body []byte) (OrderCreated, error) {
	var event OrderCreated
	if err := json.Unmarshal(body, &event); err != nil {
		return OrderCreated{}, err
	}
	if event.OrderID <= 0 || event.OrderNo == "" {
		return OrderCreated{}, fmt.Errorf("incomplete order event")
	}
	return event, nil
}

// Nop используется, когда брокер не настроен: события только пишутся в лог.
type Nop struct {
	Log *slog.Logger
}

func (n Nop) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	if n.Log != nil {
		n.Log.Debug("broker disabled, event skipped", slog.String("order_no", event.OrderNo))
	}
	return nil
}

func (n Nop) Close() error { return nil }
