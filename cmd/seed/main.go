// Command seed creates the catalog tables and loads the built-in plans,
// payment methods and wallpapers into Postgres.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"wallpaper-unlock/internal/config"
	"wallpaper-unlock/internal/domain/model"
	pg "wallpaper-unlock/internal/infra/db/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    price_pkr     BIGINT NOT NULL,
    duration      TEXT NOT NULL,
    duration_days INT NOT NULL DEFAULT 0,
    features      TEXT[] NOT NULL DEFAULT '{}',
    recommended   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS payment_methods (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    account_name   TEXT NOT NULL,
    account_number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wallpapers (
    id       TEXT PRIMARY KEY,
    url      TEXT NOT NULL,
    title    TEXT NOT NULL,
    category TEXT NOT NULL,
    premium  BOOLEAN NOT NULL DEFAULT FALSE,
    is_3d    BOOLEAN NOT NULL DEFAULT FALSE,
    likes    INT NOT NULL DEFAULT 0,
    tags     TEXT[] NOT NULL DEFAULT '{}'
);
`

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database.url is required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	planRepo := pg.NewPostgresPlanRepo(pool)
	for _, p := range model.DefaultPlans() {
		if err := planRepo.Save(ctx, p); err != nil {
			log.Fatalf("seed plan %s: %v", p.ID, err)
		}
	}

	methodRepo := pg.NewPostgresMethodRepo(pool)
	for _, m := range model.DefaultMethods() {
		if err := methodRepo.Save(ctx, m); err != nil {
			log.Fatalf("seed method %s: %v", m.ID, err)
		}
	}

	wallRepo := pg.NewPostgresWallpaperRepo(pool)
	for _, w := range model.DefaultWallpapers() {
		if err := wallRepo.Save(ctx, w); err != nil {
			log.Fatalf("seed wallpaper %s: %v", w.ID, err)
		}
	}

	log.Printf("seeded %d plans, %d methods, %d wallpapers",
		len(model.DefaultPlans()), len(model.DefaultMethods()), len(model.DefaultWallpapers()))
}
