package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	logrus "github.com/sirupsen/logrus"

	"fleet_vendor/internal/services"
)

// Exchange receiving expiry notices. A downstream mailer consumes the
// queue; this service only publishes.
const Exchange = "fleet.notifications"

type channeler interface {
	Channel() (*amqp.Channel, error)
}

// AMQPNotifier publishes notifications as JSON events to a topic exchange.
type AMQPNotifier struct {
	conn channeler
}

func NewAMQPNotifier(conn channeler) *AMQPNotifier {
	return &AMQPNotifier{conn: conn}
}

// Notify publishes a notification.driver.{id} event. The caller treats
// delivery as fire-and-forget; errors are reported for logging only.
func (p *AMQPNotifier) Notify(ctx context.Context, n services.Notification) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	body, err := json.Marshal(map[string]any{
		"id":        uuid.NewString(),
		"driver_id": n.DriverID,
		"email":     n.Email,
		"reason":    n.Reason,
		"message":   n.Message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	routingKey := fmt.Sprintf("notification.driver.%d", n.DriverID)
	if err := ch.PublishWithContext(ctx,
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// LogNotifier is the fallback when no broker is configured: the notice is
// logged and considered dispatched.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n services.Notification) error {
	logrus.WithFields(logrus.Fields{
		"driver_id": n.DriverID,
		"email":     n.Email,
		"reason":    n.Reason,
	}).Info("notification dispatched to log")
	return nil
}
