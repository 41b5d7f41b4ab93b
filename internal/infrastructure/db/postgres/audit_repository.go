package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accounts/account-service/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on the auth_events table.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_events (email, action, outcome, occurred_at) VALUES ($1, $2, $3, $4)`,
		event.Email, string(event.Action), string(event.Outcome), event.OccurredAt.UTC(),
	)
	return err
}
