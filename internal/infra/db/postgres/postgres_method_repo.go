package postgres

import (
	"context"
	"fmt"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var _ repository.MethodRepository = (*PostgresMethodRepo)(nil)

type PostgresMethodRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMethodRepo(pool *pgxpool.Pool) *PostgresMethodRepo {
	return &PostgresMethodRepo{pool: pool}
}

func (r *PostgresMethodRepo) Save(ctx context.Context, m *model.PaymentMethod) error {
	const sql = `
INSERT INTO payment_methods (id, name, account_name, account_number)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
  SET name           = EXCLUDED.name,
      account_name   = EXCLUDED.account_name,
      account_number = EXCLUDED.account_number;
`
	if _, err := r.pool.Exec(ctx, sql, m.ID, m.Name, m.AccountName, m.AccountNumber); err != nil {
		return fmt.Errorf("Save method: %w", err)
	}
	return nil
}

func (r *PostgresMethodRepo) FindByID(ctx context.Context, id string) (*model.PaymentMethod, error) {
	const sql = `
SELECT id, name, account_name, account_number
  FROM payment_methods
 WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, sql, id)
	var m model.PaymentMethod
	if err := row.Scan(&m.ID, &m.Name, &m.AccountName, &m.AccountNumber); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID method: %w", err)
	}
	return &m, nil
}

func (r *PostgresMethodRepo) ListAll(ctx context.Context) ([]*model.PaymentMethod, error) {
	const sql = `
SELECT id, name, account_name, account_number
  FROM payment_methods
 ORDER BY id;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll methods: %w", err)
	}
	defer rows.Close()

	var out []*model.PaymentMethod
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.AccountName, &m.AccountNumber); err != nil {
			return nil, fmt.Errorf("scan method: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
