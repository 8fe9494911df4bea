package amqjobs

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrorPolicy decides what happens after a broker call fails: block the
// caller for a fixed interval (flood control, not adaptive backoff) or
// escalate immediately. The mode is fixed at construction and never
// changes at runtime.
type ErrorPolicy struct {
	failFast bool
	throttle time.Duration
	logger   zerolog.Logger
}

// NewThrottlePolicy returns a policy that logs and sleeps for throttle
// before letting the caller continue.
func NewThrottlePolicy(throttle time.Duration, logger zerolog.Logger) *ErrorPolicy {
	return &ErrorPolicy{
		throttle: throttle,
		logger:   logger,
	}
}

// NewFailFastPolicy returns a policy that logs and escalates every
// failure to the caller.
func NewFailFastPolicy(logger zerolog.Logger) *ErrorPolicy {
	return &ErrorPolicy{
		failFast: true,
		logger:   logger,
	}
}

// Report logs the failed action and applies the policy. In fail-fast
// mode it returns an error wrapping err, and the caller must not
// continue. Otherwise it blocks for the configured interval and
// returns nil.
func (p *ErrorPolicy) Report(action string, err error) error {
	p.logger.Error().Str("action", action).Err(err).Msg("amqp operation failed")
	if p.failFast {
		return errors.WithMessagef(err, "amqp %s", action)
	}
	time.Sleep(p.throttle)
	return nil
}
