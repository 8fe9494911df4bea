package amqjobs

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// CorrelationProvider yields the correlation id attached to outgoing
// messages. An explicitly set id sticks until replaced; while unset,
// every Get produces a fresh id.
type CorrelationProvider struct {
	id atomic.String
}

func NewCorrelationProvider() *CorrelationProvider {
	return &CorrelationProvider{}
}

func (p *CorrelationProvider) Get() string {
	if id := p.id.Load(); id != "" {
		return id
	}
	return uuid.NewString()
}

func (p *CorrelationProvider) Set(id string) {
	p.id.Store(id)
}
