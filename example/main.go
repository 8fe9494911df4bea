package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/queueup-go/amqjobs"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := amqjobs.ConfigFromEnv("")
	if err != nil {
		panic(err)
	}
	if cfg.Queue.Name == "" {
		cfg.Queue.Name = "jobs"
	}

	conn, err := amqjobs.Dial(amqpUrl(), amqjobs.DialConfig{})
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	queue, err := amqjobs.New(conn.Channel(), cfg, amqjobs.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	id, err := queue.Push(context.Background(), "send_welcome_email", map[string]any{"user_id": 42}, "")
	if err != nil {
		panic(err)
	}
	log.Printf("pushed job, correlation id: %s", id)

	//deferred delivery, requires the delayed-message exchange plugin
	_, err = queue.Later(context.Background(), 10*time.Second, "send_reminder", map[string]any{"user_id": 42}, "")
	if err != nil {
		panic(err)
	}

	size, err := queue.Size("")
	if err != nil {
		panic(err)
	}
	log.Printf("queue size: %d", size)

	//the worker loop: pop, handle, settle
	for {
		job, err := queue.Pop("")
		if err != nil {
			panic(err)
		}
		if job == nil { //queue is empty, try again later
			break
		}
		log.Printf("job body: %s, attempts: %d", job.Body(), job.Attempts())
		err = job.Ack()
		if err != nil {
			panic(err)
		}
	}
}

func amqpUrl() string {
	host := envOrDefault("RMQ_HOST", "127.0.0.1")
	user := envOrDefault("RMQ_USER", "guest")
	pass := envOrDefault("RMQ_PASS", "guest")

	amqpUrl := fmt.Sprintf("amqp://%s:%s@%s:5672/", user, pass, host)
	return amqpUrl
}

func envOrDefault(name string, defValue string) string {
	value := os.Getenv(name)
	if value != "" {
		return value
	}
	return defValue
}
