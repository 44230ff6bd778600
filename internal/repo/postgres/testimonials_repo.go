package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/internal/domain"
)

type TestimonialsRepo interface {
	ListApproved(ctx context.Context) ([]domain.PublicTestimonial, error)
	Create(ctx context.Context, guestID int64, message string) (*domain.Testimonial, error)
	ListPendingForAdmin(ctx context.Context, adminID int64) ([]domain.PendingTestimonial, error)
	SetStatusForAdmin(ctx context.Context, id, adminID int64, status domain.ApprovalStatus) (bool, error)
}

type TestimonialsRepoImpl struct{ pool *pgxpool.Pool }

func NewTestimonialsRepo(pool *pgxpool.Pool) *TestimonialsRepoImpl {
	return &TestimonialsRepoImpl{pool: pool}
}

func (r *TestimonialsRepoImpl) ListApproved(ctx context.Context) ([]domain.PublicTestimonial, error) {
	const q = `SELECT d.mensagem, c.nome_convidado, TO_CHAR(d.data_criacao, 'DD/MM/YYYY')
FROM laisvitor_depoimentos d
JOIN laisvitor_convidados c ON d.convidado_id = c.id
WHERE d.status_aprovacao = 'Aprovado'
ORDER BY d.data_criacao DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PublicTestimonial
	for rows.Next() {
		var t domain.PublicTestimonial
		if err := rows.Scan(&t.Message, &t.Name, &t.Date); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TestimonialsRepoImpl) Create(ctx context.Context, guestID int64, message string) (*domain.Testimonial, error) {
	const q = `INSERT INTO laisvitor_depoimentos (convidado_id, mensagem, status_aprovacao)
VALUES ($1, $2, 'Pendente')
RETURNING id, convidado_id, mensagem, status_aprovacao, data_criacao`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t domain.Testimonial
	if err := r.pool.QueryRow(ctx, q, guestID, message).Scan(
		&t.ID, &t.GuestID, &t.Message, &t.Status, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialsRepoImpl) ListPendingForAdmin(ctx context.Context, adminID int64) ([]domain.PendingTestimonial, error) {
	const q = `SELECT d.id, d.mensagem, c.nome_convidado
FROM laisvitor_depoimentos d
JOIN laisvitor_convidados c ON d.convidado_id = c.id
WHERE d.status_aprovacao = 'Pendente' AND c.admin_id = $1
ORDER BY d.data_criacao`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PendingTestimonial
	for rows.Next() {
		var t domain.PendingTestimonial
		if err := rows.Scan(&t.ID, &t.Message, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TestimonialsRepoImpl) SetStatusForAdmin(ctx context.Context, id, adminID int64, status domain.ApprovalStatus) (bool, error) {
	const q = `UPDATE laisvitor_depoimentos d
SET status_aprovacao=$1
FROM laisvitor_convidados c
WHERE d.id=$2 AND d.convidado_id = c.id AND c.admin_id=$3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, status, id, adminID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
