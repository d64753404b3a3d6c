package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

type NATSPublisher struct {
	nc *nats.Conn
}

func (p *NATSPublisher) Publish(_ context.Context, ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Task == "" {
		return errors.New("event task required")
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectPrefix+ev.Task, body)
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	return nil
}
