// Package rabbitmq содержит подключение к RabbitMQ и публикацию событий заказов.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// OrderEvent описывает событие жизненного цикла заказа,
// публикуемое для внешних потребителей (уведомления администратора).
type OrderEvent struct {
	Event      string    `json:"event"`
	OrderID    int64     `json:"order_id"`
	OrderToken string    `json:"order_token"`
	UserID     int64     `json:"user_id"`
	ProductID  int64     `json:"product_id,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Имена событий заказов.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Publisher публикует события заказов в обменник RabbitMQ.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// Connect устанавливает соединение с RabbitMQ, открывает канал
// и объявляет durable-обменник для событий заказов.
func Connect(url, exchange string) (*amqp.Connection, *Publisher, error) {
	const op = "rabbitmq.Connect"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, &Publisher{ch: ch, exchange: exchange}, nil
}

// PublishOrderEvent публикует событие заказа с ключом маршрутизации,
// равным имени события.
func (p *Publisher) PublishOrderEvent(event OrderEvent) error {
	const op = "rabbitmq.PublishOrderEvent"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		event.Event,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
