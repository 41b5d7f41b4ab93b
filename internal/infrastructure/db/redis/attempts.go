package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultFailureWindow = 15 * time.Minute

// AttemptTracker counts consecutive failed signins per normalized email.
// Key format: signin:failures:<email>. The window restarts on every failure.
type AttemptTracker struct {
	client *redis.Client
	window time.Duration
}

// NewAttemptTracker creates an AttemptTracker wrapping the given Redis client.
func NewAttemptTracker(client *redis.Client, window time.Duration) *AttemptTracker {
	if window <= 0 {
		window = defaultFailureWindow
	}
	return &AttemptTracker{client: client, window: window}
}

// RecordFailure increments the failure counter and returns its new value.
func (t *AttemptTracker) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := t.key(email)

	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("record signin failure: %w", err)
	}
	return incr.Val(), nil
}

// Reset clears the failure counter after a successful signin.
func (t *AttemptTracker) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("reset signin failures: %w", err)
	}
	return nil
}

func (t *AttemptTracker) key(email string) string {
	return "signin:failures:" + email
}
