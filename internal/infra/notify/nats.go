package notify

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
)

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("mester-scheduler"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

var _ events.Publisher = (*NATSPublisher)(nil)

func (p *NATSPublisher) Publish(_ context.Context, ev events.Event) error {
	payload, err := encode(ev)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(subject(p.prefix, ev))
	msg.Data = payload
	msg.Header.Set("event_id", ev.ID.String())

	return p.conn.PublishMsg(msg)
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
