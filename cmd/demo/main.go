// Command demo walks one purchase attempt end to end against in-memory
// infrastructure and the demo classifier. No config or services required.
package main

import (
	"context"
	"log"
	"time"

	"wallpaper-unlock/internal/config"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/infra/adapters/classifier"
	"wallpaper-unlock/internal/infra/logging"
	"wallpaper-unlock/internal/infra/memory"
	"wallpaper-unlock/internal/infra/worker"
	"wallpaper-unlock/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.New(config.LogConfig{Level: "debug", Format: "console"}, true)

	planRepo := memory.NewPlanRepo(model.DefaultPlans())
	methodRepo := memory.NewMethodRepo(model.DefaultMethods())
	entRepo := memory.NewEntitlementRepo()

	pool := worker.NewPool(2, logger)
	pool.Start(ctx)
	defer pool.Stop()

	entUC := usecase.NewEntitlementUseCase(entRepo, logger)
	purchaseUC := usecase.NewPurchaseUseCase(
		planRepo, methodRepo, entUC,
		classifier.NewDemoClassifier(500*time.Millisecond),
		pool, 5*time.Second, logger,
	)

	userID := "demo-user"

	// 1. Pick the recommended plan.
	snap, err := purchaseUC.Start(ctx, userID, "monthly")
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	log.Printf("attempt %s in state %s for plan %s (PKR %d)", snap.ID, snap.State, snap.Plan.Name, snap.Plan.PricePKR)

	// 2. Choose Easypaisa; the snapshot now carries the destination account.
	snap, err = purchaseUC.SelectMethod(ctx, snap.ID, model.MethodEasypaisa)
	if err != nil {
		log.Fatalf("select method: %v", err)
	}
	log.Printf("send PKR %d to %s (%s)", snap.Plan.PricePKR, snap.Method.AccountNumber, snap.Method.AccountName)

	// 3. Upload the "receipt".
	snap, err = purchaseUC.SubmitEvidence(ctx, snap.ID, []byte("fake-screenshot-bytes"))
	if err != nil {
		log.Fatalf("submit evidence: %v", err)
	}
	log.Printf("state after submission: %s", snap.State)

	// 4. Poll until the verification resolves.
	deadline := time.Now().Add(10 * time.Second)
	for snap.State == model.AttemptVerifying && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
		snap, err = purchaseUC.Get(ctx, snap.ID)
		if err != nil {
			log.Fatalf("get: %v", err)
		}
	}
	log.Printf("final state: %s", snap.State)

	premium, err := entUC.IsPremium(ctx, userID)
	if err != nil {
		log.Fatalf("entitlement: %v", err)
	}
	log.Printf("user %s premium: %v", userID, premium)
}
