package rabbitmq

import (
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

// NewConsumer declares a durable queue bound to the exchange with each of
// the given routing keys. Rejected messages, and messages requeued more than
// DeliveryLimit times, are parked on "<queue>.dead".
func NewConsumer(url, queue string, bindingKeys []string, logger *slog.Logger) (*Consumer, error) {
	conn, ch, err := open(url)
	if err != nil {
		return nil, err
	}

	if err := declareDeadLetter(ch, queue); err != nil {
		closeAll(conn, ch)
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, QueueArgs())
	if err != nil {
		closeAll(conn, ch)
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	for _, key := range bindingKeys {
		if err := ch.QueueBind(q.Name, key, ExchangeName, false, nil); err != nil {
			closeAll(conn, ch)
			return nil, fmt.Errorf("rabbitmq queue bind %s: %w", key, err)
		}
	}

	if err := ch.Qos(10, 0, false); err != nil {
		closeAll(conn, ch)
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}

	return &Consumer{conn: conn, channel: ch, queue: q.Name, logger: logger}, nil
}

// QueueArgs makes the work queue a quorum queue, which counts redeliveries
// and dead-letters past DeliveryLimit.
func QueueArgs() amqp.Table {
	return amqp.Table{
		"x-queue-type":           "quorum",
		"x-delivery-limit":       int32(DeliveryLimit),
		"x-dead-letter-exchange": DeadLetterExchange,
	}
}

func declareDeadLetter(ch *amqp.Channel, queue string) error {
	if err := ch.ExchangeDeclare(DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq dead-letter exchange declare: %w", err)
	}
	dead, err := ch.QueueDeclare(queue+".dead", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq dead-letter queue declare: %w", err)
	}
	if err := ch.QueueBind(dead.Name, "", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq dead-letter queue bind: %w", err)
	}
	return nil
}

// Consume starts delivery with manual acknowledgement.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.logger.Info("consuming", "queue", c.queue)
	return msgs, nil
}

func (c *Consumer) Close() {
	closeAll(c.conn, c.channel)
}
