package topology

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type ExchangeOption func(e *Exchange)

// Exchange describes the exchange jobs are published through.
// An empty Name means the exchange is resolved to the queue name
// at declaration time.
type Exchange struct {
	Name       string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Declare    bool
	Args       amqp.Table
}

func NewExchange(name string, opts ...ExchangeOption) *Exchange {
	e := &Exchange{
		Name:    name,
		Type:    amqp.ExchangeDirect,
		Durable: true, // default value
		Declare: true,
		Args:    amqp.Table{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EffectiveName returns the exchange name used on the wire,
// falling back to the queue name when no name is configured.
func (e *Exchange) EffectiveName(queueName string) string {
	if e.Name == "" {
		return queueName
	}
	return e.Name
}

func WithExchangeType(kind string) ExchangeOption {
	return func(e *Exchange) {
		e.Type = kind
	}
}

// WithExchangePassive makes the declaration assert existence instead of creating.
func WithExchangePassive(value bool) ExchangeOption {
	return func(e *Exchange) {
		e.Passive = value
	}
}

func WithExchangeDurable(value bool) ExchangeOption {
	return func(e *Exchange) {
		e.Durable = value
	}
}

func WithExchangeAutoDelete(value bool) ExchangeOption {
	return func(e *Exchange) {
		e.AutoDelete = value
	}
}

// WithExchangeDeclare controls whether a declare call is issued at all.
// When false the exchange is assumed to pre-exist on the broker.
func WithExchangeDeclare(value bool) ExchangeOption {
	return func(e *Exchange) {
		e.Declare = value
	}
}

func WithExchangeArg(key string, value any) ExchangeOption {
	return func(e *Exchange) {
		e.Args[key] = value
	}
}
