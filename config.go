package amqjobs

import (
	"encoding/json"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/queueup-go/amqjobs/topology"
)

// Config carries the queue connector options. Arguments are
// JSON-encoded tables and are parsed once, at construction; malformed
// text fails New, it is never swallowed at publish time.
type Config struct {
	Queue    QueueConfig
	Exchange ExchangeConfig

	// SleepOnError is the fixed interval the adapter blocks for after a
	// broker failure before letting the caller continue.
	SleepOnError time.Duration `envconfig:"SLEEP_ON_ERROR" default:"5s"`
	// FailFastOnError disables the throttle entirely: every broker
	// failure escalates to the caller.
	FailFastOnError bool `envconfig:"FAIL_FAST_ON_ERROR"`
}

type QueueConfig struct {
	// Name is the default queue when an operation doesn't supply one.
	Name       string `envconfig:"QUEUE_NAME"`
	Arguments  string `envconfig:"QUEUE_ARGUMENTS"`
	Passive    bool   `envconfig:"QUEUE_PASSIVE"`
	Durable    bool   `envconfig:"QUEUE_DURABLE" default:"true"`
	Exclusive  bool   `envconfig:"QUEUE_EXCLUSIVE"`
	AutoDelete bool   `envconfig:"QUEUE_AUTO_DELETE"`
	Declare    bool   `envconfig:"QUEUE_DECLARE" default:"true"`
	Bind       bool   `envconfig:"QUEUE_BIND" default:"true"`
}

type ExchangeConfig struct {
	// Name of the exchange, empty means the queue name is used.
	Name       string `envconfig:"EXCHANGE_NAME"`
	Type       string `envconfig:"EXCHANGE_TYPE" default:"direct"`
	Arguments  string `envconfig:"EXCHANGE_ARGUMENTS"`
	Passive    bool   `envconfig:"EXCHANGE_PASSIVE"`
	Durable    bool   `envconfig:"EXCHANGE_DURABLE" default:"true"`
	AutoDelete bool   `envconfig:"EXCHANGE_AUTO_DELETE"`
	Declare    bool   `envconfig:"EXCHANGE_DECLARE" default:"true"`
}

// DefaultConfig returns the same defaults ConfigFromEnv applies.
func DefaultConfig() Config {
	cfg := Config{
		SleepOnError: 5 * time.Second,
	}
	cfg.Queue.Durable = true
	cfg.Queue.Declare = true
	cfg.Queue.Bind = true
	cfg.Exchange.Type = amqp.ExchangeDirect
	cfg.Exchange.Durable = true
	cfg.Exchange.Declare = true
	return cfg
}

// ConfigFromEnv reads the connector options from the environment,
// optionally namespaced by prefix.
func ConfigFromEnv(prefix string) (Config, error) {
	cfg := Config{}
	err := envconfig.Process(prefix, &cfg)
	if err != nil {
		return Config{}, errors.WithMessage(err, "process environment")
	}
	return cfg, nil
}

func (c Config) compile() (*topology.Queue, *topology.Exchange, error) {
	if c.SleepOnError < 0 {
		return nil, nil, errors.Errorf("sleep_on_error must be non-negative, got %s", c.SleepOnError)
	}

	queueArgs, err := parseArguments(c.Queue.Arguments)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "queue arguments")
	}
	exchangeArgs, err := parseArguments(c.Exchange.Arguments)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "exchange arguments")
	}

	queue := topology.NewQueue(c.Queue.Name,
		topology.WithPassive(c.Queue.Passive),
		topology.WithDurable(c.Queue.Durable),
		topology.WithExclusive(c.Queue.Exclusive),
		topology.WithAutoDelete(c.Queue.AutoDelete),
		topology.WithDeclare(c.Queue.Declare),
		topology.WithBind(c.Queue.Bind),
	)
	for key, value := range queueArgs {
		queue.Args[key] = value
	}

	exchangeType := c.Exchange.Type
	if exchangeType == "" {
		exchangeType = amqp.ExchangeDirect
	}
	exchange := topology.NewExchange(c.Exchange.Name,
		topology.WithExchangeType(exchangeType),
		topology.WithExchangePassive(c.Exchange.Passive),
		topology.WithExchangeDurable(c.Exchange.Durable),
		topology.WithExchangeAutoDelete(c.Exchange.AutoDelete),
		topology.WithExchangeDeclare(c.Exchange.Declare),
	)
	for key, value := range exchangeArgs {
		exchange.Args[key] = value
	}

	return queue, exchange, nil
}

func parseArguments(raw string) (amqp.Table, error) {
	if raw == "" {
		return amqp.Table{}, nil
	}
	args := amqp.Table{}
	err := json.Unmarshal([]byte(raw), &args)
	if err != nil {
		return nil, errors.WithMessage(err, "unmarshal json table")
	}
	return args, nil
}
