package amqjobs

import (
	"github.com/pkg/errors"
	"github.com/queueup-go/amqjobs/topology"
)

// ErrQueueNameRequired is returned when an operation neither supplies a
// queue name nor has a configured default. It is a configuration
// mistake and is never routed through the error policy.
var ErrQueueNameRequired = errors.New("queue name is required")

// Declarator resolves the queue/exchange pair an operation targets and
// declares both through the broker at most once per instance. The
// declared-name sets live for the lifetime of one adapter and are not
// safe for concurrent mutation, use one adapter per connection.
type Declarator struct {
	queue    *topology.Queue
	exchange *topology.Exchange
	ch       Channel

	declaredExchanges map[string]struct{}
	declaredQueues    map[string]struct{}
}

func NewDeclarator(queue *topology.Queue, exchange *topology.Exchange, ch Channel) *Declarator {
	return &Declarator{
		queue:             queue,
		exchange:          exchange,
		ch:                ch,
		declaredExchanges: map[string]struct{}{},
		declaredQueues:    map[string]struct{}{},
	}
}

// Resolve returns the effective queue and exchange names for an
// operation, declaring both lazily. The binding is re-issued on every
// call, binds are deliberately not memoized.
func (d *Declarator) Resolve(queueName string) (string, string, error) {
	queue := queueName
	if queue == "" {
		queue = d.queue.Name
	}
	if queue == "" {
		return "", "", ErrQueueNameRequired
	}
	exchange := d.exchange.EffectiveName(queue)

	err := d.declareExchange(exchange)
	if err != nil {
		return "", "", err
	}

	err = d.declareQueue(queue)
	if err != nil {
		return "", "", err
	}

	if d.queue.Bind {
		err = d.ch.QueueBind(queue, queue, exchange, false, nil)
		if err != nil {
			return "", "", errors.WithMessagef(err, "bind queue '%s' to exchange '%s'", queue, exchange)
		}
	}

	return queue, exchange, nil
}

func (d *Declarator) declareExchange(name string) error {
	if !d.exchange.Declare {
		return nil
	}
	if _, ok := d.declaredExchanges[name]; ok {
		return nil
	}

	var err error
	if d.exchange.Passive {
		err = d.ch.ExchangeDeclarePassive(name, d.exchange.Type, d.exchange.Durable, d.exchange.AutoDelete, false, false, d.exchange.Args)
	} else {
		err = d.ch.ExchangeDeclare(name, d.exchange.Type, d.exchange.Durable, d.exchange.AutoDelete, false, false, d.exchange.Args)
	}
	if err != nil {
		return errors.WithMessagef(err, "declare exchange '%s'", name)
	}

	d.declaredExchanges[name] = struct{}{}
	return nil
}

func (d *Declarator) declareQueue(name string) error {
	if !d.queue.Declare {
		return nil
	}
	if _, ok := d.declaredQueues[name]; ok {
		return nil
	}

	var err error
	if d.queue.Passive {
		_, err = d.ch.QueueDeclarePassive(name, d.queue.Durable, d.queue.AutoDelete, d.queue.Exclusive, false, d.queue.Args)
	} else {
		_, err = d.ch.QueueDeclare(name, d.queue.Durable, d.queue.AutoDelete, d.queue.Exclusive, false, d.queue.Args)
	}
	if err != nil {
		return errors.WithMessagef(err, "declare queue '%s'", name)
	}

	d.declaredQueues[name] = struct{}{}
	return nil
}
