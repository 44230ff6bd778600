package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/internal/domain"
)

type AdminsRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type AdminsRepoImpl struct{ pool *pgxpool.Pool }

func NewAdminsRepo(pool *pgxpool.Pool) *AdminsRepoImpl { return &AdminsRepoImpl{pool: pool} }

func (r *AdminsRepoImpl) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const q = `SELECT id, username, chave_admin_hash FROM laisvitor_admin WHERE username=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, username).Scan(&a.ID, &a.Username, &a.KeyHash)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
