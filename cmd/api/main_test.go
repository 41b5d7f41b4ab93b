package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/accounts/account-service/internal/pkg/config"
)

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		Port:            "0",
		ShutdownTimeout: 5 * time.Second,
		Auth:            config.AuthConfig{JWTSecret: "secret", BcryptCost: 4},
		Store:           config.StoreConfig{Driver: config.DriverMemory},
		Audit:           config.AuditConfig{Workers: 1},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}

func TestRun_ReportsStartupFailure(t *testing.T) {
	cfg := &config.Config{
		Auth:  config.AuthConfig{JWTSecret: "secret"},
		Store: config.StoreConfig{Driver: "unknown"},
	}
	if err := run(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected startup error")
	}
}
