package eventbus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSink chan []byte

func (c chanSink) Submit(_ context.Context, data []byte) bool {
	c <- data
	return true
}

func natsURL() string {
	if url := os.Getenv("NATS_URL"); url != "" {
		return url
	}
	return nats.DefaultURL
}

func setupPublisher(t *testing.T) *Publisher {
	pub, err := NewPublisher(natsURL(), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(pub.Close)

	// Connect retries in the background, so give it a moment.
	deadline := time.Now().Add(500 * time.Millisecond)
	for !pub.IsConnected() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if !pub.IsConnected() {
		t.Skip("NATS not available, skipping test")
	}
	return pub
}

func TestEventbus_PublishReachesSubscriber(t *testing.T) {
	pub := setupPublisher(t)

	sub, err := NewSubscriber(natsURL(), "test-relay", logging.Nop())
	require.NoError(t, err)
	defer sub.Close()

	sink := make(chanSink, 1)
	subject := "test.detections." + time.Now().Format("150405.000000")
	require.NoError(t, sub.Start(context.Background(), subject, sink))
	require.NoError(t, sub.conn.Flush())

	require.NoError(t, pub.Publish(context.Background(), subject, []byte(`{"Type":"Pick"}`)))

	select {
	case got := <-sink:
		assert.Equal(t, `{"Type":"Pick"}`, string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestPublisher_CancelledContext(t *testing.T) {
	pub := setupPublisher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, pub.Publish(ctx, "test.cancelled", []byte("{}")), context.Canceled)
}
