// File: internal/infra/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/infra/adapters/classifier"
	"wallpaper-unlock/internal/infra/memory"
	"wallpaper-unlock/internal/infra/worker"
	"wallpaper-unlock/internal/usecase"
)

const testAdminPassword = "hunter2"

// newTestServer wires a full server on in-memory repos with the demo
// classifier on a short delay: long enough to observe the Verifying window,
// short enough that purchase flows resolve within the test.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()

	entUC := usecase.NewEntitlementUseCase(memory.NewEntitlementRepo(), &log)
	pool := worker.NewPool(2, &log)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	purchaseUC := usecase.NewPurchaseUseCase(
		memory.NewPlanRepo(model.DefaultPlans()),
		memory.NewMethodRepo(model.DefaultMethods()),
		entUC,
		classifier.NewDemoClassifier(100*time.Millisecond),
		pool,
		time.Second,
		&log,
	)
	planUC := usecase.NewPlanUseCase(memory.NewPlanRepo(model.DefaultPlans()), memory.NewMethodRepo(model.DefaultMethods()))
	catalogUC := usecase.NewCatalogUseCase(memory.NewWallpaperRepo(model.DefaultWallpapers()))
	auth := NewAuthManager("test-secret", false, 30*time.Minute)

	srv := NewServer(purchaseUC, entUC, planUC, catalogUC, auth, testAdminPassword, &log)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestServer_CatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("plans", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/plans")
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		plans := decode[[]map[string]any](t, resp)
		if len(plans) != 4 {
			t.Fatalf("plans = %d, want 4", len(plans))
		}
	})

	t.Run("methods carry receiving accounts", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/methods")
		if err != nil {
			t.Fatal(err)
		}
		methods := decode[[]map[string]any](t, resp)
		if len(methods) != 2 {
			t.Fatalf("methods = %d", len(methods))
		}
		for _, m := range methods {
			if m["account_number"] == "" {
				t.Errorf("method %v missing account_number", m["id"])
			}
		}
	})

	t.Run("wallpapers filter by category", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/wallpapers?category=Nature")
		if err != nil {
			t.Fatal(err)
		}
		walls := decode[[]map[string]any](t, resp)
		if len(walls) != 3 {
			t.Fatalf("Nature wallpapers = %d, want 3", len(walls))
		}
	})

	t.Run("categories", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/categories")
		if err != nil {
			t.Fatal(err)
		}
		cats := decode[[]string](t, resp)
		if len(cats) == 0 || cats[0] != "Trending" {
			t.Fatalf("categories = %v", cats)
		}
	})

	t.Run("entitlement requires user_id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/entitlement")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestServer_PurchaseFlow(t *testing.T) {
	ts := newTestServer(t)
	img := base64.StdEncoding.EncodeToString([]byte("receipt-screenshot"))

	// Start
	resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "user-1", "plan_id": "monthly"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start status = %d", resp.StatusCode)
	}
	attempt := decode[map[string]any](t, resp)
	id, _ := attempt["id"].(string)
	if id == "" || attempt["state"] != "selecting_method" {
		t.Fatalf("start response = %v", attempt)
	}
	base := ts.URL + "/api/v1/purchase/" + id

	// Select method; the response carries the destination account.
	resp = postJSON(t, base+"/method", map[string]string{"method_id": "easypaisa"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select method status = %d", resp.StatusCode)
	}
	attempt = decode[map[string]any](t, resp)
	method, _ := attempt["method"].(map[string]any)
	if attempt["state"] != "awaiting_evidence" || method["account_number"] != "0303 0997911" {
		t.Fatalf("select response = %v", attempt)
	}

	// Submit evidence; accepted asynchronously by the demo classifier.
	resp = postJSON(t, base+"/evidence", map[string]string{"image": img})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("evidence status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	var state string
	for time.Now().Before(deadline) {
		r, err := http.Get(base)
		if err != nil {
			t.Fatal(err)
		}
		attempt = decode[map[string]any](t, r)
		state, _ = attempt["state"].(string)
		if state == "verified" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if state != "verified" {
		t.Fatalf("attempt never verified, state = %s", state)
	}

	// Entitlement is now visible on the public read.
	r, err := http.Get(ts.URL + "/api/v1/entitlement?user_id=user-1")
	if err != nil {
		t.Fatal(err)
	}
	ent := decode[map[string]any](t, r)
	if ent["premium"] != true {
		t.Fatalf("entitlement = %v", ent)
	}

	// Terminal attempt refuses more evidence.
	resp = postJSON(t, base+"/evidence", map[string]string{"image": img})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("evidence after verified: status = %d", resp.StatusCode)
	}
}

func TestServer_DoubleSubmissionConflicts(t *testing.T) {
	ts := newTestServer(t)
	img := base64.StdEncoding.EncodeToString([]byte("receipt"))

	resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "user-2", "plan_id": "weekly"})
	attempt := decode[map[string]any](t, resp)
	id, _ := attempt["id"].(string)
	base := ts.URL + "/api/v1/purchase/" + id

	resp = postJSON(t, base+"/method", map[string]string{"method_id": "jazzcash"})
	resp.Body.Close()

	resp = postJSON(t, base+"/evidence", map[string]string{"image": img})
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("first evidence status = %d", resp.StatusCode)
	}

	// The demo classifier holds the attempt in Verifying for its delay window;
	// a second submission inside it must 409.
	resp = postJSON(t, base+"/evidence", map[string]string{"image": img})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second evidence status = %d, want 409", resp.StatusCode)
	}
}

func TestServer_PurchaseValidation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("unknown plan", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "u", "plan_id": "platinum"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "u", "plan_id": "monthly"})
		attempt := decode[map[string]any](t, resp)
		id, _ := attempt["id"].(string)

		resp = postJSON(t, ts.URL+"/api/v1/purchase/"+id+"/method", map[string]string{"method_id": "paypal"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("bad base64 evidence", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "u", "plan_id": "monthly"})
		attempt := decode[map[string]any](t, resp)
		id, _ := attempt["id"].(string)
		base := ts.URL + "/api/v1/purchase/" + id

		r := postJSON(t, base+"/method", map[string]string{"method_id": "jazzcash"})
		r.Body.Close()

		r = postJSON(t, base+"/evidence", map[string]string{"image": "!!not-base64!!"})
		r.Body.Close()
		if r.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d", r.StatusCode)
		}
	})

	t.Run("unknown attempt", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/purchase/no-such-attempt")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestServer_ChangeMethodAndCancel(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "user-3", "plan_id": "yearly"})
	attempt := decode[map[string]any](t, resp)
	id, _ := attempt["id"].(string)
	base := ts.URL + "/api/v1/purchase/" + id

	r := postJSON(t, base+"/method", map[string]string{"method_id": "jazzcash"})
	r.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, base+"/method", nil)
	dr, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	attempt = decode[map[string]any](t, dr)
	if attempt["state"] != "selecting_method" || attempt["method"] != nil {
		t.Fatalf("after change method: %v", attempt)
	}

	cr := postJSON(t, base+"/cancel", struct{}{})
	cr.Body.Close()
	if cr.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel status = %d", cr.StatusCode)
	}
	gr, err := http.Get(base)
	if err != nil {
		t.Fatal(err)
	}
	gr.Body.Close()
	if gr.StatusCode != http.StatusNotFound {
		t.Fatalf("get after cancel: status = %d", gr.StatusCode)
	}
}

func TestServer_AdminAuth(t *testing.T) {
	ts := newTestServer(t)

	t.Run("attempts without session", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/admin/api/attempts")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/admin/api/login", map[string]string{"password": "wrong"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("login then list via bearer token", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/admin/api/login", map[string]string{"password": testAdminPassword})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("login status = %d", resp.StatusCode)
		}
		body := decode[map[string]string](t, resp)
		token := body["token"]
		if token == "" {
			t.Fatal("login returned no token")
		}

		// Seed one open attempt so the listing is non-trivial.
		ar := postJSON(t, ts.URL+"/api/v1/purchase", map[string]string{"user_id": "user-9", "plan_id": "monthly"})
		ar.Body.Close()

		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/admin/api/attempts", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		lr, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		if lr.StatusCode != http.StatusOK {
			t.Fatalf("attempts status = %d", lr.StatusCode)
		}
		attempts := decode[[]map[string]any](t, lr)
		if len(attempts) != 1 {
			t.Fatalf("open attempts = %d, want 1", len(attempts))
		}
	})
}
