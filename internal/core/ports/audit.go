package ports

import (
	"context"

	"github.com/accounts/account-service/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditSink accepts audit events without blocking the caller.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// SigninAttemptTracker counts consecutive failed signins per email.
type SigninAttemptTracker interface {
	// RecordFailure increments the counter and returns its new value.
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}
