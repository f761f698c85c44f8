// internal/infra/notifyamqp/rabbitmq.notify.go
package notifyamqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agendly/agenda-service/internal/ports/notify"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitNotifier publishes notifications to a durable queue consumed by
// the delivery service (email/push fan-out lives there, not here).
type RabbitNotifier struct {
	conn  *amqp.Connection
	chn   *amqp.Channel
	queue string
}

func NewRabbitNotifier(url, queue string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	_, err = chn.QueueDeclare(
		queue,
		true,  //durable
		false, //delete when unused
		false, //exclusive
		false, //no-wait
		nil,   //arguments
	)
	if err != nil {
		_ = chn.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return &RabbitNotifier{conn: conn, chn: chn, queue: queue}, nil
}

func (r *RabbitNotifier) Notify(ctx context.Context, n notify.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return r.chn.PublishWithContext(
		ctx,
		"",      //exchange
		r.queue, //routing key (queue name)
		false,   //mandatory
		false,   //immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (r *RabbitNotifier) Close() error {
	if err := r.chn.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
