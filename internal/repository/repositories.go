package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	AuditRepo AuditRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		AuditRepo: NewAuditRepository(pool),
	}
}
