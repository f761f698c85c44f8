// internal/infra/notifykafka/kafka.notify.go
package notifykafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agendly/agenda-service/internal/ports/notify"
	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of segmentio kafka.Writer we need. This makes
// the publisher testable.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher mirrors every notification onto the agenda event bus so
// other services (calendars, dashboards) can react to mutations.
type Publisher struct {
	writer Writer
}

func NewPublisher(brokerURL, topic string) *Publisher {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &Publisher{writer: w}
}

// NewPublisherWithWriter allows injecting a test writer.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) Notify(ctx context.Context, n notify.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	msg := skafka.Message{Key: []byte(n.Type), Value: b}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
