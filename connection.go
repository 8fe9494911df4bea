package amqjobs

import (
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type DialConfig struct {
	amqp.Config
	DialTimeout time.Duration
}

// Connection owns one AMQP connection and the channel an adapter works
// on. There is no reconnect loop: after a fatal broker error the caller
// dials a new connection, which also starts a fresh topology cache.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string, config DialConfig) (*Connection, error) {
	if config.Heartbeat == 0 {
		config.Heartbeat = 10 * time.Second
	}
	if config.Locale == "" {
		config.Locale = "en_US"
	}
	if config.Dial == nil {
		timeout := config.DialTimeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		config.Dial = amqp.DefaultDial(timeout)
	}

	conn, err := amqp.DialConfig(url, config.Config)
	if err != nil {
		return nil, errors.WithMessage(err, "dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.WithMessage(err, "create channel")
	}

	return &Connection{
		conn: conn,
		ch:   ch,
	}, nil
}

func (c *Connection) Channel() Channel {
	return c.ch
}

func (c *Connection) Close() error {
	err := c.ch.Close()
	if err != nil {
		_ = c.conn.Close()
		return errors.WithMessage(err, "channel close")
	}

	err = c.conn.Close()
	return errors.WithMessage(err, "connection close")
}
