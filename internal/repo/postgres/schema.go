package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laisvitor/wedding-backend/pkg/config"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS laisvitor_admin (
  id BIGSERIAL PRIMARY KEY,
  username VARCHAR(50) UNIQUE NOT NULL,
  chave_admin_hash VARCHAR(256) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS laisvitor_convidados (
  id BIGSERIAL PRIMARY KEY,
  admin_id BIGINT REFERENCES laisvitor_admin(id),
  codigo_convite VARCHAR(20) UNIQUE NOT NULL,
  nome_convidado VARCHAR(255) NOT NULL,
  status_rsvp VARCHAR(50) DEFAULT 'Pendente',
  qtd_adultos INTEGER,
  restricoes_alimentares TEXT,
  data_confirmacao TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS laisvitor_presentes (
  id BIGSERIAL PRIMARY KEY,
  admin_id BIGINT REFERENCES laisvitor_admin(id),
  nome_presente VARCHAR(100) NOT NULL,
  descricao TEXT,
  imagem_url VARCHAR(255),
  valor_cota NUMERIC(10,2) NOT NULL,
  esta_ativo BOOLEAN DEFAULT TRUE
)`,
	`CREATE TABLE IF NOT EXISTS laisvitor_depoimentos (
  id BIGSERIAL PRIMARY KEY,
  convidado_id BIGINT REFERENCES laisvitor_convidados(id),
  mensagem TEXT NOT NULL,
  status_aprovacao VARCHAR(50) DEFAULT 'Pendente',
  data_criacao TIMESTAMPTZ DEFAULT now()
)`,
}

// EnsureSchema creates the four tables if absent. Safe to run on every boot.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

// Seed inserts the default admin and two sample gifts when the admin table
// is empty. Count-then-insert keeps it idempotent across restarts.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM laisvitor_admin`).Scan(&count); err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := argon2id.CreateHash(cfg.AdminKey, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash default admin key: %w", err)
	}

	var adminID int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO laisvitor_admin (username, chave_admin_hash) VALUES ($1, $2) RETURNING id`,
		cfg.AdminUsername, hash,
	).Scan(&adminID); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	sampleGifts := []struct {
		name, description string
		value             float64
	}{
		{"Cota Lua de Mel", "Contribua com uma cota da nossa lua de mel", 150.00},
		{"Jantar Romântico", "Um jantar especial para os noivos", 80.00},
	}
	for _, g := range sampleGifts {
		if _, err := pool.Exec(ctx,
			`INSERT INTO laisvitor_presentes (admin_id, nome_presente, descricao, valor_cota) VALUES ($1, $2, $3, $4)`,
			adminID, g.name, g.description, g.value,
		); err != nil {
			return fmt.Errorf("failed to seed sample gifts: %w", err)
		}
	}

	logger.Info("Default admin seeded", "username", cfg.AdminUsername)
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, e.g. an invite-code collision.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
