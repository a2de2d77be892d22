package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/nats-io/nats.go"
)

// connect opens a NATS connection that keeps retrying in the background.
func connect(natsURL, name string) (*nats.Conn, error) {
	return nats.Connect(natsURL,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
}

// Publisher publishes relay output to NATS
type Publisher struct {
	conn *nats.Conn
	log  *logging.Logger
}

// NewPublisher creates a new event bus publisher
func NewPublisher(natsURL string, log *logging.Logger) (*Publisher, error) {
	conn, err := connect(natsURL, "detection-relay-pub")
	if err != nil {
		return nil, err
	}

	log.Info("publisher connected to NATS", "url", natsURL)

	return &Publisher{
		conn: conn,
		log:  log,
	}, nil
}

// Publish sends data to subject.
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.conn.Close()
		}
		p.log.Info("publisher disconnected from NATS")
	}
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}
