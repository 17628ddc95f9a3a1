package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-seating/internal/data/entity"
	"event-seating/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	queueBookingConfirmed = "booking.confirmed"
	queueRosterReady      = "event.roster"
)

type bookingConfirmedMessage struct {
	OccupantEmail string   `json:"occupant_email"`
	OccupantName  string   `json:"occupant_name"`
	SeatIDs       []string `json:"seats"`
	Date          string   `json:"date"`
	SentAt        string   `json:"sent_at"`
}

type rosterRowMessage struct {
	SeatID        string  `json:"seat_id"`
	OccupantName  string  `json:"occupant_name"`
	OccupantEmail string  `json:"occupant_email"`
	OccupantPhone *string `json:"occupant_phone,omitempty"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
}

type rosterReadyMessage struct {
	EventID   string             `json:"event_id"`
	EventName string             `json:"event_name"`
	EventDate string             `json:"event_date"`
	Rows      []rosterRowMessage `json:"rows"`
	SentAt    string             `json:"sent_at"`
}

// AMQPNotifier publishes notification intents to durable RabbitMQ queues
// as persistent JSON messages.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

func NewAMQPNotifier(url string, log *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Durable queues so intents survive broker restarts.
	for _, name := range []string{queueBookingConfirmed, queueRosterReady} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", name, err)
		}
	}

	return &AMQPNotifier{
		conn: conn,
		ch:   ch,
		log:  log.With(zap.String("notifier", "amqp")),
	}, nil
}

func (n *AMQPNotifier) NotifyBookingConfirmed(ctx context.Context, email, occupantName string, seatIDs []string, date time.Time) error {
	msg := bookingConfirmedMessage{
		OccupantEmail: email,
		OccupantName:  occupantName,
		SeatIDs:       seatIDs,
		Date:          utils.FormatDate(date),
		SentAt:        time.Now().UTC().Format(time.RFC3339),
	}

	return n.publish(ctx, queueBookingConfirmed, msg)
}

func (n *AMQPNotifier) NotifyRosterReady(ctx context.Context, event *entity.Event, rows []*entity.RosterRow) error {
	msg := rosterReadyMessage{
		EventID:   event.ID.String(),
		EventName: event.Name,
		EventDate: utils.FormatDate(event.EventDate),
		Rows:      make([]rosterRowMessage, 0, len(rows)),
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, row := range rows {
		msg.Rows = append(msg.Rows, rosterRowMessage{
			SeatID:        row.SeatID,
			OccupantName:  row.OccupantName,
			OccupantEmail: row.OccupantEmail,
			OccupantPhone: row.OccupantPhone,
			Date:          utils.FormatDate(row.BookingDate),
			Status:        string(row.Status),
		})
	}

	return n.publish(ctx, queueRosterReady, msg)
}

func (n *AMQPNotifier) publish(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", queue, err)
	}

	err = n.ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		n.log.Error("Failed to publish notification",
			zap.Error(err),
			zap.String("queue", queue),
		)
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	return nil
}

func (n *AMQPNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
