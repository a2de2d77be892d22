package eventbus

import (
	"context"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/nats-io/nats.go"
)

// Submitter accepts inbound payloads for processing.
type Submitter interface {
	Submit(ctx context.Context, data []byte) bool
}

type Subscriber struct {
	conn         *nats.Conn
	subscription *nats.Subscription
	queue        string
	log          *logging.Logger
}

// NewSubscriber connects to NATS. Subscribers sharing a queue group split
// the inbound subject between them.
func NewSubscriber(natsURL, queue string, log *logging.Logger) (*Subscriber, error) {
	conn, err := connect(natsURL, "detection-relay-sub")
	if err != nil {
		return nil, err
	}

	log.Info("subscriber connected to NATS", "url", natsURL)

	return &Subscriber{
		conn:  conn,
		queue: queue,
		log:   log,
	}, nil
}

// Start subscribes to subject and hands every message to sink. It returns
// once the subscription is in place.
func (s *Subscriber) Start(ctx context.Context, subject string, sink Submitter) error {
	var err error

	s.subscription, err = s.conn.QueueSubscribe(subject, s.queue, func(msg *nats.Msg) {
		if !sink.Submit(ctx, msg.Data) {
			s.log.Warn("dropped inbound message during shutdown", "subject", msg.Subject, "bytes", len(msg.Data))
		}
	})
	if err != nil {
		return err
	}

	s.log.Info("subscribed", "subject", subject, "queue", s.queue)
	return nil
}

func (s *Subscriber) Close() {
	if s.subscription != nil {
		if err := s.subscription.Unsubscribe(); err != nil {
			s.log.Warn("failed to unsubscribe", "error", err)
		}
	}

	if s.conn != nil {
		s.conn.Close()
		s.log.Info("subscriber disconnected from NATS")
	}
}

func (s *Subscriber) IsConnected() bool {
	return s.conn != nil && s.conn.IsConnected()
}
