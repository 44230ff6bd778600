package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/internal/domain"
)

type StatsRepo interface {
	Dashboard(ctx context.Context, adminID int64) (*domain.DashboardStats, error)
}

type StatsRepoImpl struct{ pool *pgxpool.Pool }

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepoImpl { return &StatsRepoImpl{pool: pool} }

func (r *StatsRepoImpl) Dashboard(ctx context.Context, adminID int64) (*domain.DashboardStats, error) {
	const q = `SELECT
  (SELECT COUNT(*) FROM laisvitor_convidados WHERE admin_id=$1 AND status_rsvp='Confirmado'),
  (SELECT COUNT(*) FROM laisvitor_convidados WHERE admin_id=$1 AND status_rsvp='Pendente'),
  (SELECT COUNT(*) FROM laisvitor_depoimentos d
     JOIN laisvitor_convidados c ON d.convidado_id = c.id
     WHERE c.admin_id=$1 AND d.status_aprovacao='Pendente')`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.DashboardStats
	if err := r.pool.QueryRow(ctx, q, adminID).Scan(
		&s.Confirmed, &s.PendingRSVP, &s.PendingTestimonials,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
