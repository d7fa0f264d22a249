// Package valkeycache keeps per-user unread notification counters in Valkey
// so the badge endpoint does not hit the document store on every poll.
package valkeycache

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

type UnreadCounter struct {
	client valkey.Client
}

func NewUnreadCounter(addr string) (*UnreadCounter, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}
	return &UnreadCounter{client: client}, nil
}

func key(userID string) string {
	return "notif:unread:" + userID
}

// Incr bumps the counter when a notification is created.
func (c *UnreadCounter) Incr(ctx context.Context, userID string) error {
	return c.client.Do(ctx, c.client.B().Incr().Key(key(userID)).Build()).Error()
}

// Decr lowers the counter when a notification transitions to read. Marking
// an already-read notification must not call this.
func (c *UnreadCounter) Decr(ctx context.Context, userID string) error {
	return c.client.Do(ctx, c.client.B().Decr().Key(key(userID)).Build()).Error()
}

// Get returns the cached unread count; a missing key counts as zero.
func (c *UnreadCounter) Get(ctx context.Context, userID string) (int64, error) {
	n, err := c.client.Do(ctx, c.client.B().Get().Key(key(userID)).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (c *UnreadCounter) Close() {
	c.client.Close()
}
