package amqjobs

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Option func(q *Queue)

func WithLogger(logger zerolog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithErrorPolicy overrides the policy derived from the config.
func WithErrorPolicy(policy *ErrorPolicy) Option {
	return func(q *Queue) {
		q.policy = policy
	}
}

func WithPayloadCreator(creator PayloadCreator) Option {
	return func(q *Queue) {
		q.payloads = creator
	}
}

// Properties overrides optional envelope properties. Zero fields are
// left untouched.
type Properties struct {
	MessageID  string
	Type       string
	AppID      string
	ReplyTo    string
	Expiration string
	Priority   uint8
}

func (p Properties) apply(msg *amqp.Publishing) {
	if p.MessageID != "" {
		msg.MessageId = p.MessageID
	}
	if p.Type != "" {
		msg.Type = p.Type
	}
	if p.AppID != "" {
		msg.AppId = p.AppID
	}
	if p.ReplyTo != "" {
		msg.ReplyTo = p.ReplyTo
	}
	if p.Expiration != "" {
		msg.Expiration = p.Expiration
	}
	if p.Priority > 0 {
		msg.Priority = p.Priority
	}
}

type publishOptions struct {
	headers     amqp.Table
	properties  Properties
	attempts    int
	attemptsSet bool
	delay       time.Duration
}

type PublishOption func(o *publishOptions)

// WithHeaders merges headers into the envelope headers.
func WithHeaders(headers amqp.Table) PublishOption {
	return func(o *publishOptions) {
		if o.headers == nil {
			o.headers = amqp.Table{}
		}
		for key, value := range headers {
			o.headers[key] = value
		}
	}
}

func WithProperties(properties Properties) PublishOption {
	return func(o *publishOptions) {
		o.properties = properties
	}
}

// WithAttempts stores the retry counter under the attempt-count header.
func WithAttempts(attempts int) PublishOption {
	return func(o *publishOptions) {
		o.attempts = attempts
		o.attemptsSet = true
	}
}

// WithDelay defers delivery by the given duration using the broker's
// native delayed delivery.
func WithDelay(delay time.Duration) PublishOption {
	return func(o *publishOptions) {
		o.delay = delay
	}
}
