package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
)

func TestEntitlementRepo_Monotone(t *testing.T) {
	ctx := context.Background()
	repo := NewEntitlementRepo()

	if _, err := repo.Find(ctx, "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Find before grant: err = %v", err)
	}

	week := time.Now().Add(7 * 24 * time.Hour)
	month := time.Now().Add(30 * 24 * time.Hour)

	if err := repo.Grant(ctx, &model.Entitlement{UserID: "user-1", Premium: true, PlanID: "weekly", ExpiresAt: &week}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Grant(ctx, &model.Entitlement{UserID: "user-1", Premium: true, PlanID: "monthly", ExpiresAt: &month}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.PlanID != "monthly" {
		t.Fatalf("later expiry did not win: %+v", got)
	}

	// Lifetime wins over any date and can never be demoted.
	if err := repo.Grant(ctx, &model.Entitlement{UserID: "user-1", Premium: true, PlanID: "lifetime"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Grant(ctx, &model.Entitlement{UserID: "user-1", Premium: true, PlanID: "weekly", ExpiresAt: &week}); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.Find(ctx, "user-1")
	if got.PlanID != "lifetime" || got.ExpiresAt != nil {
		t.Fatalf("lifetime demoted: %+v", got)
	}
}

func TestEntitlementRepo_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewEntitlementRepo()
	if err := repo.Grant(ctx, &model.Entitlement{UserID: "user-1", Premium: true, PlanID: "monthly"}); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Find(ctx, "user-1")
	got.Premium = false
	again, _ := repo.Find(ctx, "user-1")
	if !again.Premium {
		t.Fatal("Find handed out the stored record instead of a copy")
	}
}
