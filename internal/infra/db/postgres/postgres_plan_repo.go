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

// Ensure interface compliance
var _ repository.PlanRepository = (*PostgresPlanRepo)(nil)

type PostgresPlanRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPlanRepo(pool *pgxpool.Pool) *PostgresPlanRepo {
	return &PostgresPlanRepo{pool: pool}
}

// Save upserts a plan; used by cmd/seed, never by the running core.
func (r *PostgresPlanRepo) Save(ctx context.Context, plan *model.Plan) error {
	const sql = `
INSERT INTO plans (id, name, price_pkr, duration, duration_days, features, recommended, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
  SET name          = EXCLUDED.name,
      price_pkr     = EXCLUDED.price_pkr,
      duration      = EXCLUDED.duration,
      duration_days = EXCLUDED.duration_days,
      features      = EXCLUDED.features,
      recommended   = EXCLUDED.recommended;
`
	_, err := r.pool.Exec(ctx, sql,
		plan.ID, plan.Name, plan.PricePKR, plan.Duration, plan.DurationDays, plan.Features, plan.Recommended, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Save plan: %w", err)
	}
	return nil
}

func (r *PostgresPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	const sql = `
SELECT id, name, price_pkr, duration, duration_days, features, recommended, created_at
  FROM plans
 WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, sql, id)
	var p model.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.PricePKR, &p.Duration, &p.DurationDays, &p.Features, &p.Recommended, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID plan: %w", err)
	}
	return &p, nil
}

func (r *PostgresPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	const sql = `
SELECT id, name, price_pkr, duration, duration_days, features, recommended, created_at
  FROM plans
 ORDER BY price_pkr;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll plans: %w", err)
	}
	defer rows.Close()

	var out []*model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePKR, &p.Duration, &p.DurationDays, &p.Features, &p.Recommended, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
