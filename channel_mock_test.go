package amqjobs_test

import (
	"context"

	"github.com/queueup-go/amqjobs"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

type channelMock struct {
	mock.Mock
}

func (m *channelMock) ExchangeDeclare(name string, kind string, durable bool, autoDelete bool, internal bool, noWait bool, args amqp.Table) error {
	called := m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return called.Error(0)
}

func (m *channelMock) ExchangeDeclarePassive(name string, kind string, durable bool, autoDelete bool, internal bool, noWait bool, args amqp.Table) error {
	called := m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return called.Error(0)
}

func (m *channelMock) QueueDeclare(name string, durable bool, autoDelete bool, exclusive bool, noWait bool, args amqp.Table) (amqp.Queue, error) {
	called := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return called.Get(0).(amqp.Queue), called.Error(1)
}

func (m *channelMock) QueueDeclarePassive(name string, durable bool, autoDelete bool, exclusive bool, noWait bool, args amqp.Table) (amqp.Queue, error) {
	called := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return called.Get(0).(amqp.Queue), called.Error(1)
}

func (m *channelMock) QueueBind(name string, key string, exchange string, noWait bool, args amqp.Table) error {
	called := m.Called(name, key, exchange, noWait, args)
	return called.Error(0)
}

func (m *channelMock) QueueInspect(name string) (amqp.Queue, error) {
	called := m.Called(name)
	return called.Get(0).(amqp.Queue), called.Error(1)
}

func (m *channelMock) PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error {
	called := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return called.Error(0)
}

func (m *channelMock) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	called := m.Called(queue, autoAck)
	return called.Get(0).(amqp.Delivery), called.Bool(1), called.Error(2)
}

func allowTopology(ch *channelMock) {
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(amqp.Queue{}, nil)
	ch.On("QueueBind", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func capturePublishings(ch *channelMock, sink *[]amqp.Publishing) {
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*sink = append(*sink, args.Get(5).(amqp.Publishing))
		}).
		Return(nil)
}

func testConfig(queueName string) amqjobs.Config {
	cfg := amqjobs.DefaultConfig()
	cfg.Queue.Name = queueName
	cfg.SleepOnError = 0
	return cfg
}

type acknowledgerMock struct {
	mock.Mock
}

func (m *acknowledgerMock) Ack(tag uint64, multiple bool) error {
	called := m.Called(tag, multiple)
	return called.Error(0)
}

func (m *acknowledgerMock) Nack(tag uint64, multiple bool, requeue bool) error {
	called := m.Called(tag, multiple, requeue)
	return called.Error(0)
}

func (m *acknowledgerMock) Reject(tag uint64, requeue bool) error {
	called := m.Called(tag, requeue)
	return called.Error(0)
}
