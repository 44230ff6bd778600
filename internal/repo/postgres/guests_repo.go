package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/internal/domain"
	"github.com/laisvitor/wedding-backend/internal/utils"
)

type GuestsRepo interface {
	FindByCode(ctx context.Context, code string) (*domain.Guest, error)
	ConfirmByCode(ctx context.Context, code string, status domain.RSVPStatus, adults int, dietary string) (*domain.Guest, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]domain.Guest, error)
	Create(ctx context.Context, adminID int64, name string) (*domain.Guest, error)
	GetForAdmin(ctx context.Context, id, adminID int64) (*domain.Guest, error)
	UpdateForAdmin(ctx context.Context, id, adminID int64, name string, status domain.RSVPStatus, adults int, dietary string) (bool, error)
}

type GuestsRepoImpl struct{ pool *pgxpool.Pool }

func NewGuestsRepo(pool *pgxpool.Pool) *GuestsRepoImpl { return &GuestsRepoImpl{pool: pool} }

const guestCols = `id, admin_id, codigo_convite, nome_convidado,
status_rsvp, COALESCE(qtd_adultos, 0), COALESCE(restricoes_alimentares, ''), data_confirmacao`

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	err := row.Scan(
		&g.ID, &g.AdminID, &g.InviteCode, &g.Name,
		&g.Status, &g.AdultCount, &g.DietaryRestrictions, &g.ConfirmedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestsRepoImpl) FindByCode(ctx context.Context, code string) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM laisvitor_convidados WHERE codigo_convite=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q, code))
}

func (r *GuestsRepoImpl) ConfirmByCode(ctx context.Context, code string, status domain.RSVPStatus, adults int, dietary string) (*domain.Guest, error) {
	const q = `UPDATE laisvitor_convidados
SET status_rsvp=$1, qtd_adultos=$2, restricoes_alimentares=$3, data_confirmacao=now()
WHERE codigo_convite=$4
RETURNING ` + guestCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q, status, adults, dietary, code))
}

func (r *GuestsRepoImpl) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM laisvitor_convidados WHERE admin_id=$1 ORDER BY nome_convidado`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Guest
	for rows.Next() {
		var g domain.Guest
		if err := rows.Scan(
			&g.ID, &g.AdminID, &g.InviteCode, &g.Name,
			&g.Status, &g.AdultCount, &g.DietaryRestrictions, &g.ConfirmedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Create inserts a guest with a fresh 6-character invite code. The code is
// not retried on a unique collision; callers see the constraint violation.
func (r *GuestsRepoImpl) Create(ctx context.Context, adminID int64, name string) (*domain.Guest, error) {
	const q = `INSERT INTO laisvitor_convidados (admin_id, nome_convidado, codigo_convite)
VALUES ($1, $2, $3)
RETURNING ` + guestCols

	code := utils.NewInviteCode()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q, adminID, name, code))
}

func (r *GuestsRepoImpl) GetForAdmin(ctx context.Context, id, adminID int64) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM laisvitor_convidados WHERE id=$1 AND admin_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q, id, adminID))
}

func (r *GuestsRepoImpl) UpdateForAdmin(ctx context.Context, id, adminID int64, name string, status domain.RSVPStatus, adults int, dietary string) (bool, error) {
	const q = `UPDATE laisvitor_convidados
SET nome_convidado=$1, status_rsvp=$2, qtd_adultos=$3, restricoes_alimentares=$4
WHERE id=$5 AND admin_id=$6`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, name, status, adults, dietary, id, adminID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
