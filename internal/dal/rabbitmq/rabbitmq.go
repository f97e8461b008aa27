package rabbitmq

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Client wraps one AMQP connection and channel. Publishing goes through
// Publish so callers never touch the channel directly.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// MustNewClient connects to the broker named in config, with credentials
// taken from the environment.
func MustNewClient() *Client {
	connStr := fmt.Sprintf(
		"amqp://%s:%s@%s:5672/",
		os.Getenv("RABBITMQ_DEFAULT_USER"),
		os.Getenv("RABBITMQ_DEFAULT_PASS"),
		viper.GetString("rabbitmq.host"),
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to RabbitMQ: %v", err))
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			panic(fmt.Sprintf("Failed to close a connection: %v", closeErr))
		}
		panic(fmt.Sprintf("Failed to open a channel: %v", err))
	}

	slog.Info("RabbitMQ connected")

	return &Client{
		conn:    conn,
		channel: channel,
	}
}

// DeclareQueue declares a queue and returns its name.
func (r *Client) DeclareQueue(name string, durable bool) (string, error) {
	queue, err := r.channel.QueueDeclare(name, durable, false, false, false, nil)
	if err != nil {
		return "", err
	}

	return queue.Name, nil
}

// Publish sends one message to the given exchange and routing key.
func (r *Client) Publish(exchange, routingKey, contentType string, body []byte) error {
	return r.channel.Publish(exchange, routingKey, false, false, amqp.Publishing{
		ContentType: contentType,
		Body:        body,
	})
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
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
