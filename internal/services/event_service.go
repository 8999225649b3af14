package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/sisventas/separata-backend/internal/models"
)

const eventQueueName = "separata_events"

// EventService publishes separata mutation events to RabbitMQ for
// downstream audit consumers. Publishing is fire and forget: a failed
// publish is logged, never surfaced to the mutation that triggered it.
type EventService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewEventService() (*EventService, error) {
	// Get RabbitMQ connection details from environment
	host := getEnv("RABBITMQ_HOST", "localhost")
	port := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		eventQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.Info("Event service initialized")
	return &EventService{conn: conn, channel: channel}, nil
}

// PublishItemEvent emits an item mutation event
func (s *EventService) PublishItemEvent(action string, item *models.SeparataItem) {
	s.publish(map[string]interface{}{
		"action":      action,
		"item_id":     item.ID,
		"separata_id": item.SeparataID,
		"code":        item.Code,
		"entered_by":  item.EnteredBy,
	})
}

// PublishSeparataEvent emits a separata-level mutation event
func (s *EventService) PublishSeparataEvent(action, separataID, actor string) {
	s.publish(map[string]interface{}{
		"action":      action,
		"separata_id": separataID,
		"actor":       actor,
	})
}

func (s *EventService) publish(message map[string]interface{}) {
	message["event_id"] = uuid.NewString()
	body, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("Failed to marshal event: %v", err)
		return
	}

	err = s.channel.Publish(
		"",             // exchange
		eventQueueName, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		logrus.Errorf("Failed to publish event %v: %v", message["action"], err)
	}
}

// Close closes the RabbitMQ connection
func (s *EventService) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
