// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallpaper-unlock/internal/config"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/adapter"
	"wallpaper-unlock/internal/domain/ports/repository"
	"wallpaper-unlock/internal/infra/adapters/classifier"
	"wallpaper-unlock/internal/infra/api"
	pg "wallpaper-unlock/internal/infra/db/postgres"
	"wallpaper-unlock/internal/infra/logging"
	"wallpaper-unlock/internal/infra/memory"
	"wallpaper-unlock/internal/infra/metrics"
	red "wallpaper-unlock/internal/infra/redis"
	"wallpaper-unlock/internal/infra/worker"
	"wallpaper-unlock/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed defaults)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Redis (optional) ----
	var redisClient red.RedisClient
	if cfg.Redis.URL != "" {
		rc, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		redisClient = rc
	}

	// ---- Catalog repositories ----
	var (
		planRepo      repository.PlanRepository
		methodRepo    repository.MethodRepository
		wallpaperRepo repository.WallpaperRepository
	)
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		planRepo = pg.NewPostgresPlanRepo(pool)
		if redisClient != nil {
			planRepo = pg.NewPlanRepoCacheDecorator(planRepo, redisClient, cfg.Redis.TTL)
		}
		methodRepo = pg.NewPostgresMethodRepo(pool)
		wallpaperRepo = pg.NewPostgresWallpaperRepo(pool)
		logger.Info().Msg("catalog: postgres")
	} else {
		planRepo = memory.NewPlanRepo(model.DefaultPlans())
		methodRepo = memory.NewMethodRepo(methodsFromConfig(cfg))
		wallpaperRepo = memory.NewWallpaperRepo(model.DefaultWallpapers())
		logger.Info().Msg("catalog: built-in (no database.url configured)")
	}

	// ---- Entitlement store ----
	var entRepo repository.EntitlementRepository
	if redisClient != nil {
		entRepo = red.NewEntitlementStore(redisClient)
	} else {
		entRepo = memory.NewEntitlementRepo()
		logger.Warn().Msg("entitlements: in-process only (no redis.url configured)")
	}

	// ---- Receipt classifier (Demo -> Gemini -> OpenAI-compatible) ----
	var rc adapter.ReceiptClassifier
	switch {
	case cfg.Verification.DemoMode:
		rc = classifier.NewDemoClassifier(cfg.Verification.DemoDelay)
		logger.Warn().Msg("classifier: DEMO MODE, every receipt auto-accepts; never enable in production")
	case cfg.Classifier.GeminiKey != "":
		rc, err = classifier.NewGeminiClassifier(ctx, cfg.Classifier.GeminiKey, cfg.Classifier.GeminiURL, cfg.Classifier.Model)
		if err != nil {
			log.Fatalf("gemini classifier: %v", err)
		}
		logger.Info().Str("model", cfg.Classifier.Model).Msg("classifier: gemini")
	case cfg.Classifier.OpenAIKey != "":
		rc, err = classifier.NewOpenAIClassifier(cfg.Classifier.OpenAIKey, cfg.Classifier.OpenAIBaseURL, cfg.Classifier.Model)
		if err != nil {
			log.Fatalf("openai classifier: %v", err)
		}
		logger.Info().Str("model", cfg.Classifier.Model).Msg("classifier: openai")
	default:
		// LoadConfig already rejects this combination.
		log.Fatalf("no classifier configured")
	}

	// ---- Workers & use cases ----
	pool := worker.NewPool(cfg.Verification.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	entUC := usecase.NewEntitlementUseCase(entRepo, logger)
	purchaseUC := usecase.NewPurchaseUseCase(planRepo, methodRepo, entUC, rc, pool, cfg.Classifier.Timeout, logger)
	planUC := usecase.NewPlanUseCase(planRepo, methodRepo)
	catalogUC := usecase.NewCatalogUseCase(wallpaperRepo)

	// ---- HTTP ----
	auth := api.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	srv := api.NewServer(purchaseUC, entUC, planUC, catalogUC, auth, cfg.Admin.Password, logger)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
			cancel()
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}

// methodsFromConfig applies the config overrides for receiving accounts,
// falling back to the built-in registry.
func methodsFromConfig(cfg *config.Config) []*model.PaymentMethod {
	if len(cfg.Methods) == 0 {
		return model.DefaultMethods()
	}
	out := make([]*model.PaymentMethod, 0, len(cfg.Methods))
	for _, m := range cfg.Methods {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		out = append(out, &model.PaymentMethod{
			ID:            m.ID,
			Name:          name,
			AccountName:   m.AccountName,
			AccountNumber: m.AccountNumber,
		})
	}
	return out
}
