package topology_test

import (
	"testing"

	"github.com/queueup-go/amqjobs/topology"
	"github.com/stretchr/testify/require"
)

func TestExchangeDefaults(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	exchange := topology.NewExchange("work")
	require.EqualValues("work", exchange.Name)
	require.EqualValues("direct", exchange.Type)
	require.True(exchange.Durable)
	require.True(exchange.Declare)
	require.False(exchange.Passive)
	require.Empty(exchange.Args)
}

func TestExchangeEffectiveName(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	named := topology.NewExchange("work")
	require.EqualValues("work", named.EffectiveName("jobs"))

	unnamed := topology.NewExchange("")
	require.EqualValues("jobs", unnamed.EffectiveName("jobs"))
}

func TestQueueOptions(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	queue := topology.NewQueue("jobs",
		topology.WithDurable(false),
		topology.WithExclusive(true),
		topology.WithBind(false),
		topology.WithQueueArg("x-max-priority", 10),
	)
	require.False(queue.Durable)
	require.True(queue.Exclusive)
	require.True(queue.Declare)
	require.False(queue.Bind)
	require.EqualValues(10, queue.Args["x-max-priority"])
}
