package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/segmentio/kafka-go"
)

const (
	kafkaMinBytes = 1_000
	kafkaMaxBytes = 10_000_000

	processAttempts = 3
	retryBackoff    = time.Second
)

// Producer writes relay output to Kafka. The topic is chosen per message.
type Producer struct {
	writer  *kafka.Writer
	brokers []string
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		brokers: brokers,
	}
}

// Publish writes data to topic and waits for the broker to acknowledge it.
func (p *Producer) Publish(ctx context.Context, topic string, data []byte) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Value: data}); err != nil {
		return fmt.Errorf("failed to write to %s: %w", topic, err)
	}
	return nil
}

// Ping dials the first reachable broker.
func (p *Producer) Ping(ctx context.Context) error {
	var lastErr error
	for _, addr := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		lastErr = errors.New("no brokers configured")
	}
	return fmt.Errorf("kafka unreachable: %w", lastErr)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Handler processes one consumed payload.
type Handler interface {
	Process(ctx context.Context, data []byte) error
}

// Consumer reads the inbound topic as part of a consumer group and commits
// each message after it has been handled.
type Consumer struct {
	reader *kafka.Reader
	log    *logging.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *logging.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: kafkaMinBytes,
			MaxBytes: kafkaMaxBytes,
			MaxWait:  500 * time.Millisecond,
		}),
		log: log,
	}
}

// Run fetches, handles and commits messages until ctx is cancelled or the
// reader is closed. Messages are handled in partition order.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Error("kafka fetch failed", "error", err)
			if !sleep(ctx, retryBackoff) {
				return nil
			}
			continue
		}

		c.handle(ctx, handler, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("kafka commit failed", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		}
	}
}

// handle retries a failing handler a few times before giving the message up.
func (c *Consumer) handle(ctx context.Context, handler Handler, msg kafka.Message) {
	var err error
	for attempt := 1; attempt <= processAttempts; attempt++ {
		if err = handler.Process(ctx, msg.Value); err == nil {
			return
		}
		c.log.Warn("processing failed",
			"attempt", attempt, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		if attempt < processAttempts && !sleep(ctx, retryBackoff*time.Duration(attempt)) {
			return
		}
	}
	c.log.Error("giving up on message", "partition", msg.Partition, "offset", msg.Offset, "error", err)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
