package registry

import (
	"context"
	"fmt"
)

const (
	statsAccepted = "stats:accepted"
	statsRejected = "stats:rejected"
)

func messageKey(msgType, id string) string {
	return fmt.Sprintf("message:%s:%s", msgType, id)
}

func indexKey(msgType string) string {
	return fmt.Sprintf("messages:%s", msgType)
}

// Record stores the canonical form of an accepted message, adds its ID to
// the per-type index and bumps the accepted counter.
func (c *Client) Record(ctx context.Context, msgType, id string, canonical []byte) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, messageKey(msgType, id), canonical, c.ttl)
	pipe.SAdd(ctx, indexKey(msgType), id)
	pipe.Incr(ctx, statsAccepted)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record %s %s: %w", msgType, id, err)
	}
	return nil
}

// Seen reports whether a message with this type and ID is still recorded.
func (c *Client) Seen(ctx context.Context, msgType, id string) (bool, error) {
	n, err := c.rdb.Exists(ctx, messageKey(msgType, id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s %s: %w", msgType, id, err)
	}
	return n > 0, nil
}

func (c *Client) CountRejected(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, statsRejected).Err(); err != nil {
		return fmt.Errorf("failed to count rejection: %w", err)
	}
	return nil
}

// Stats holds the relay's running totals. It is reported on /health.
type Stats struct {
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	vals, err := c.rdb.MGet(ctx, statsAccepted, statsRejected).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return Stats{Accepted: toInt(vals[0]), Rejected: toInt(vals[1])}, nil
}

func toInt(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0
	}
	return n
}
