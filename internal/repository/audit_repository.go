package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEvent is one completed mutating request.
type AuditEvent struct {
	ID         string
	RequestID  string
	UserID     string
	Method     string
	Path       string
	Route      string
	Status     int
	OccurredAt time.Time
}

type AuditRepository interface {
	Create(ctx context.Context, event *AuditEvent) error
}

type pgAuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &pgAuditRepository{pool: pool}
}

func (r *pgAuditRepository) Create(ctx context.Context, event *AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	query := `
		INSERT INTO audit_events (id, request_id, user_id, method, path, route, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID, event.RequestID, event.UserID, event.Method, event.Path, event.Route, event.Status, event.OccurredAt,
	)
	return err
}
