package amqjobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PayloadCreator builds the serialized body for a job. Applications
// normally plug in their own framing, JSONPayloadCreator is the default.
type PayloadCreator interface {
	CreatePayload(job string, data any) ([]byte, error)
}

type jobPayload struct {
	UUID string `json:"uuid"`
	Job  string `json:"job"`
	Data any    `json:"data"`
}

type JSONPayloadCreator struct {
}

func (c JSONPayloadCreator) CreatePayload(job string, data any) ([]byte, error) {
	body, err := json.Marshal(jobPayload{
		UUID: uuid.NewString(),
		Job:  job,
		Data: data,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "marshal job payload")
	}
	return body, nil
}
