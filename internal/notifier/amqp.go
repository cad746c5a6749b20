package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/latinbarber/booking-api/internal/events"
)

// AMQPNotifier publishes booking events to a topic exchange for the
// notification consumers (push reminders, admin alerts). Publishing is
// fire-and-forget: a broker failure is logged and the booking proceeds.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

func (n *AMQPNotifier) Deliver(ev events.Event) {
	ap := ev.Appointment
	body, err := json.Marshal(map[string]any{
		"appointment_id": ap.ID,
		"customer_name":  ap.CustomerName,
		"barber_name":    ap.BarberName,
		"date":           ap.Date,
		"time":           ap.Time,
	})
	if err != nil {
		log.Println("notifier: marshal:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = n.ch.PublishWithContext(ctx, n.exchange, string(ev.Type), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Println("notifier: publish:", err)
	}
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
