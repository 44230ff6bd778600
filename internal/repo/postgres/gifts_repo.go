package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/internal/domain"
)

type GiftsRepo interface {
	ListActive(ctx context.Context) ([]domain.Gift, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]domain.Gift, error)
	Create(ctx context.Context, adminID int64, in *domain.GiftReq) (int64, error)
	GetForAdmin(ctx context.Context, id, adminID int64) (*domain.Gift, error)
	UpdateForAdmin(ctx context.Context, id, adminID int64, in *domain.GiftReq) (bool, error)
	SetActiveForAdmin(ctx context.Context, id, adminID int64, active bool) (bool, error)
}

type GiftsRepoImpl struct{ pool *pgxpool.Pool }

func NewGiftsRepo(pool *pgxpool.Pool) *GiftsRepoImpl { return &GiftsRepoImpl{pool: pool} }

// valor_cota is NUMERIC(10,2) in the schema; it is selected as float8 so the
// JSON body carries a number, not a string.
const giftCols = `id, admin_id, nome_presente, COALESCE(descricao, ''),
COALESCE(imagem_url, ''), valor_cota::float8, esta_ativo`

func (r *GiftsRepoImpl) listWhere(ctx context.Context, q string, args ...any) ([]domain.Gift, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Gift
	for rows.Next() {
		var g domain.Gift
		if err := rows.Scan(
			&g.ID, &g.AdminID, &g.Name, &g.Description,
			&g.ImageURL, &g.UnitValue, &g.IsActive,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GiftsRepoImpl) ListActive(ctx context.Context) ([]domain.Gift, error) {
	const q = `SELECT ` + giftCols + ` FROM laisvitor_presentes WHERE esta_ativo = TRUE ORDER BY id`
	return r.listWhere(ctx, q)
}

func (r *GiftsRepoImpl) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Gift, error) {
	const q = `SELECT ` + giftCols + ` FROM laisvitor_presentes WHERE admin_id=$1 ORDER BY id`
	return r.listWhere(ctx, q, adminID)
}

func (r *GiftsRepoImpl) Create(ctx context.Context, adminID int64, in *domain.GiftReq) (int64, error) {
	const q = `INSERT INTO laisvitor_presentes (admin_id, nome_presente, descricao, imagem_url, valor_cota)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	if err := r.pool.QueryRow(ctx, q, adminID, in.Name, in.Description, in.ImageURL, in.UnitValue).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *GiftsRepoImpl) GetForAdmin(ctx context.Context, id, adminID int64) (*domain.Gift, error) {
	const q = `SELECT ` + giftCols + ` FROM laisvitor_presentes WHERE id=$1 AND admin_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var g domain.Gift
	err := r.pool.QueryRow(ctx, q, id, adminID).Scan(
		&g.ID, &g.AdminID, &g.Name, &g.Description,
		&g.ImageURL, &g.UnitValue, &g.IsActive,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GiftsRepoImpl) UpdateForAdmin(ctx context.Context, id, adminID int64, in *domain.GiftReq) (bool, error) {
	const q = `UPDATE laisvitor_presentes
SET nome_presente=$1, descricao=$2, imagem_url=$3, valor_cota=$4
WHERE id=$5 AND admin_id=$6`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, in.Name, in.Description, in.ImageURL, in.UnitValue, id, adminID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *GiftsRepoImpl) SetActiveForAdmin(ctx context.Context, id, adminID int64, active bool) (bool, error) {
	const q = `UPDATE laisvitor_presentes SET esta_ativo=$1 WHERE id=$2 AND admin_id=$3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, active, id, adminID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
