package postgres

import (
	"context"
	"fmt"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var _ repository.WallpaperRepository = (*PostgresWallpaperRepo)(nil)

type PostgresWallpaperRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWallpaperRepo(pool *pgxpool.Pool) *PostgresWallpaperRepo {
	return &PostgresWallpaperRepo{pool: pool}
}

func (r *PostgresWallpaperRepo) Save(ctx context.Context, w *model.Wallpaper) error {
	const sql = `
INSERT INTO wallpapers (id, url, title, category, premium, is_3d, likes, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
  SET url      = EXCLUDED.url,
      title    = EXCLUDED.title,
      category = EXCLUDED.category,
      premium  = EXCLUDED.premium,
      is_3d    = EXCLUDED.is_3d,
      likes    = EXCLUDED.likes,
      tags     = EXCLUDED.tags;
`
	if _, err := r.pool.Exec(ctx, sql, w.ID, w.URL, w.Title, w.Category, w.Premium, w.Is3D, w.Likes, w.Tags); err != nil {
		return fmt.Errorf("Save wallpaper: %w", err)
	}
	return nil
}

func (r *PostgresWallpaperRepo) ListAll(ctx context.Context) ([]*model.Wallpaper, error) {
	const sql = `
SELECT id, url, title, category, premium, is_3d, likes, tags
  FROM wallpapers
 ORDER BY likes DESC;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll wallpapers: %w", err)
	}
	defer rows.Close()
	return scanWallpapers(rows)
}

func (r *PostgresWallpaperRepo) ListByCategory(ctx context.Context, category string) ([]*model.Wallpaper, error) {
	const sql = `
SELECT id, url, title, category, premium, is_3d, likes, tags
  FROM wallpapers
 WHERE category = $1
 ORDER BY likes DESC;
`
	rows, err := r.pool.Query(ctx, sql, category)
	if err != nil {
		return nil, fmt.Errorf("ListByCategory wallpapers: %w", err)
	}
	defer rows.Close()
	return scanWallpapers(rows)
}

func scanWallpapers(rows pgx.Rows) ([]*model.Wallpaper, error) {
	var out []*model.Wallpaper
	for rows.Next() {
		var w model.Wallpaper
		if err := rows.Scan(&w.ID, &w.URL, &w.Title, &w.Category, &w.Premium, &w.Is3D, &w.Likes, &w.Tags); err != nil {
			return nil, fmt.Errorf("scan wallpaper: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
