package amqjobs

import (
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrJobAlreadySettled = errors.New("job already settled")

// Job is a single message popped from a queue together with the handle
// needed to settle it. The worker loop owns the ack/reject decision.
type Job struct {
	delivery amqp.Delivery
	settled  bool
}

func newJob(delivery amqp.Delivery) *Job {
	return &Job{
		delivery: delivery,
	}
}

func (j *Job) Body() []byte {
	return j.delivery.Body
}

func (j *Job) CorrelationID() string {
	return j.delivery.CorrelationId
}

// Attempts returns the retry counter carried in the message headers,
// zero for a message that has never been released.
func (j *Job) Attempts() int {
	switch value := j.delivery.Headers[attemptsHeader].(type) {
	case int:
		return value
	case int32:
		return int(value)
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

// Delivery exposes the underlying broker message.
func (j *Job) Delivery() *amqp.Delivery {
	return &j.delivery
}

func (j *Job) Ack() error {
	if j.settled {
		return ErrJobAlreadySettled
	}
	j.settled = true

	err := j.delivery.Ack(false)
	if err != nil {
		return errors.WithMessage(err, "ack job")
	}
	return nil
}

func (j *Job) Nack(requeue bool) error {
	if j.settled {
		return ErrJobAlreadySettled
	}
	j.settled = true

	err := j.delivery.Nack(false, requeue)
	if err != nil {
		return errors.WithMessage(err, "nack job")
	}
	return nil
}
