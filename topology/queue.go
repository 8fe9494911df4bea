package topology

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type QueueOption func(q *Queue)

// Queue describes the queue jobs are pushed to and popped from.
type Queue struct {
	Name       string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	Declare    bool
	Bind       bool
	Args       amqp.Table
}

func NewQueue(name string, opts ...QueueOption) *Queue {
	q := &Queue{
		Name:    name,
		Durable: true, // default value
		Declare: true,
		Bind:    true,
		Args:    amqp.Table{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// WithPassive makes the declaration assert existence instead of creating.
func WithPassive(value bool) QueueOption {
	return func(q *Queue) {
		q.Passive = value
	}
}

func WithDurable(value bool) QueueOption {
	return func(q *Queue) {
		q.Durable = value
	}
}

func WithExclusive(value bool) QueueOption {
	return func(q *Queue) {
		q.Exclusive = value
	}
}

func WithAutoDelete(value bool) QueueOption {
	return func(q *Queue) {
		q.AutoDelete = value
	}
}

// WithDeclare controls whether a declare call is issued at all.
// When false the queue is assumed to pre-exist on the broker.
func WithDeclare(value bool) QueueOption {
	return func(q *Queue) {
		q.Declare = value
	}
}

// WithBind controls whether the queue is bound to its exchange,
// using the queue name as the routing key.
func WithBind(value bool) QueueOption {
	return func(q *Queue) {
		q.Bind = value
	}
}

func WithQueueArg(key string, value any) QueueOption {
	return func(q *Queue) {
		q.Args[key] = value
	}
}
