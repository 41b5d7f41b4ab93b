package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestAttemptTracker_Key(t *testing.T) {
	tr := NewAttemptTracker(nil, 0)
	if got := tr.key("a@b.com"); got != "signin:failures:a@b.com" {
		t.Fatalf("unexpected key %q", got)
	}
	if tr.window != defaultFailureWindow {
		t.Fatalf("expected default window, got %v", tr.window)
	}
}

func TestAttemptTracker_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	tr := NewAttemptTracker(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := tr.RecordFailure(ctx, "a@b.com"); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
	if err := tr.Reset(ctx, "a@b.com"); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
}

func newMiniTracker(t *testing.T, window time.Duration) (*AttemptTracker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAttemptTracker(client, window), srv
}

func TestAttemptTracker_CountsAndResets(t *testing.T) {
	tr, srv := newMiniTracker(t, time.Minute)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := tr.RecordFailure(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("record failure: %v", err)
		}
		if got != want {
			t.Fatalf("expected count %d, got %d", want, got)
		}
	}
	if ttl := srv.TTL("signin:failures:a@b.com"); ttl != time.Minute {
		t.Fatalf("expected window ttl, got %v", ttl)
	}

	other, err := tr.RecordFailure(ctx, "c@d.com")
	if err != nil || other != 1 {
		t.Fatalf("expected independent counter per email, got %d (%v)", other, err)
	}

	if err := tr.Reset(ctx, "a@b.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if srv.Exists("signin:failures:a@b.com") {
		t.Fatalf("expected counter removed after reset")
	}

	got, err := tr.RecordFailure(ctx, "a@b.com")
	if err != nil || got != 1 {
		t.Fatalf("expected count to restart at 1, got %d (%v)", got, err)
	}
}

func TestAttemptTracker_WindowExpires(t *testing.T) {
	tr, srv := newMiniTracker(t, time.Minute)
	ctx := context.Background()

	if _, err := tr.RecordFailure(ctx, "a@b.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	srv.FastForward(2 * time.Minute)

	got, err := tr.RecordFailure(ctx, "a@b.com")
	if err != nil || got != 1 {
		t.Fatalf("expected count to restart after window, got %d (%v)", got, err)
	}
}

func TestAttemptTracker_ResetUnknownEmail(t *testing.T) {
	tr, _ := newMiniTracker(t, time.Minute)
	if err := tr.Reset(context.Background(), "nobody@b.com"); err != nil {
		t.Fatalf("reset of missing key should succeed: %v", err)
	}
}
