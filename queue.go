package amqjobs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	contentType = "application/json"

	// attemptsHeader carries the retry counter across releases.
	attemptsHeader = "x-attempts"
	// delayHeader is the delayed delivery interval in milliseconds,
	// honored by the broker's delayed-message exchange.
	delayHeader = "x-delay"
)

// Queue bridges a job-queue abstraction to an AMQP broker over a
// single channel. Topology state (which exchanges and queues were
// already declared) is owned by this instance, it is not safe for
// concurrent use, run one Queue per connection or serialize access
// externally.
type Queue struct {
	ch          Channel
	declarator  *Declarator
	policy      *ErrorPolicy
	correlation *CorrelationProvider
	payloads    PayloadCreator
	logger      zerolog.Logger
}

func New(ch Channel, cfg Config, opts ...Option) (*Queue, error) {
	queueCfg, exchangeCfg, err := cfg.compile()
	if err != nil {
		return nil, err
	}

	q := &Queue{
		ch:          ch,
		correlation: NewCorrelationProvider(),
		payloads:    JSONPayloadCreator{},
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}

	if q.policy == nil {
		if cfg.FailFastOnError {
			q.policy = NewFailFastPolicy(q.logger)
		} else {
			q.policy = NewThrottlePolicy(cfg.SleepOnError, q.logger)
		}
	}
	q.declarator = NewDeclarator(queueCfg, exchangeCfg, ch)

	return q, nil
}

// Push serializes a job through the payload creator and enqueues it.
// It returns the correlation id of the sent message, or an empty id
// when a broker failure was throttled.
func (q *Queue) Push(ctx context.Context, job string, data any, queueName string) (string, error) {
	payload, err := q.payloads.CreatePayload(job, data)
	if err != nil {
		return "", err
	}
	return q.PushRaw(ctx, payload, queueName)
}

// PushRaw enqueues an already serialized payload. Broker failures are
// reported to the error policy: in throttle mode PushRaw returns
// ("", nil) and the caller should treat the message as not delivered,
// in fail-fast mode the error escalates.
func (q *Queue) PushRaw(ctx context.Context, payload []byte, queueName string, opts ...PublishOption) (string, error) {
	options := publishOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.attempts < 0 {
		return "", errors.Errorf("attempts must be non-negative, got %d", options.attempts)
	}
	if options.delay < 0 {
		return "", errors.Errorf("delay must be non-negative, got %s", options.delay)
	}

	queue, exchange, err := q.declarator.Resolve(queueName)
	if err != nil {
		if errors.Is(err, ErrQueueNameRequired) {
			return "", err
		}
		return "", q.policy.Report("publish", err)
	}

	msg := q.buildEnvelope(payload, options)
	err = q.ch.PublishWithContext(ctx, exchange, queue, false, false, msg)
	if err != nil {
		return "", q.policy.Report("publish", errors.WithMessagef(err, "publish to exchange '%s'", exchange))
	}

	return msg.CorrelationId, nil
}

// Later enqueues a job whose delivery is deferred by delay.
func (q *Queue) Later(ctx context.Context, delay time.Duration, job string, data any, queueName string) (string, error) {
	payload, err := q.payloads.CreatePayload(job, data)
	if err != nil {
		return "", err
	}
	return q.PushRaw(ctx, payload, queueName, WithDelay(delay))
}

// LaterAt enqueues a job for delivery at an absolute time. A time in
// the past means immediate delivery.
func (q *Queue) LaterAt(ctx context.Context, at time.Time, job string, data any, queueName string) (string, error) {
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	return q.Later(ctx, delay, job, data, queueName)
}

// Release returns a failed job to the queue after delay, carrying its
// attempt counter so the worker can give up eventually.
func (q *Queue) Release(ctx context.Context, delay time.Duration, payload []byte, queueName string, attempts int) (string, error) {
	return q.PushRaw(ctx, payload, queueName, WithDelay(delay), WithAttempts(attempts))
}

// Pop performs a single non-blocking receive. (nil, nil) means the
// queue is currently empty, which is a normal outcome. Broker failures
// follow the error policy the same way PushRaw does.
func (q *Queue) Pop(queueName string) (*Job, error) {
	queue, _, err := q.declarator.Resolve(queueName)
	if err != nil {
		if errors.Is(err, ErrQueueNameRequired) {
			return nil, err
		}
		return nil, q.policy.Report("pop", err)
	}

	delivery, ok, err := q.ch.Get(queue, false)
	if err != nil {
		return nil, q.policy.Report("pop", errors.WithMessagef(err, "get from queue '%s'", queue))
	}
	if !ok {
		return nil, nil
	}

	return newJob(delivery), nil
}

// Size ensures the queue exists and returns the broker-reported
// message count.
func (q *Queue) Size(queueName string) (int, error) {
	queue, _, err := q.declarator.Resolve(queueName)
	if err != nil {
		return 0, err
	}

	state, err := q.ch.QueueInspect(queue)
	if err != nil {
		return 0, errors.WithMessagef(err, "inspect queue '%s'", queue)
	}
	return state.Messages, nil
}

func (q *Queue) CorrelationID() string {
	return q.correlation.Get()
}

func (q *Queue) SetCorrelationID(id string) {
	q.correlation.Set(id)
}

func (q *Queue) buildEnvelope(payload []byte, options publishOptions) amqp.Publishing {
	headers := amqp.Table{}
	for key, value := range options.headers {
		headers[key] = value
	}
	if options.attemptsSet {
		headers[attemptsHeader] = int32(options.attempts)
	}
	if options.delay > 0 {
		headers[delayHeader] = options.delay.Milliseconds()
	}

	msg := amqp.Publishing{
		Headers:       headers,
		ContentType:   contentType,
		DeliveryMode:  amqp.Persistent,
		CorrelationId: q.correlation.Get(),
		Timestamp:     time.Now(),
		Body:          payload,
	}
	options.properties.apply(&msg)

	return msg
}
