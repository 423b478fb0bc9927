// File: internal/infra/api/server.go
package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/usecase"
)

// Server is the HTTP surface the wallpaper app talks to: catalog reads and
// the purchase-attempt lifecycle.
type Server struct {
	purchaseUC    usecase.PurchaseUseCase
	entUC         usecase.EntitlementUseCase
	planUC        *usecase.PlanUseCase
	catalogUC     *usecase.CatalogUseCase
	auth          *AuthManager
	adminPassword string
	log           *zerolog.Logger
}

func NewServer(
	purchaseUC usecase.PurchaseUseCase,
	entUC usecase.EntitlementUseCase,
	planUC *usecase.PlanUseCase,
	catalogUC *usecase.CatalogUseCase,
	auth *AuthManager,
	adminPassword string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		purchaseUC:    purchaseUC,
		entUC:         entUC,
		planUC:        planUC,
		catalogUC:     catalogUC,
		auth:          auth,
		adminPassword: adminPassword,
		log:           logger,
	}
}

// Router builds the route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", s.handleListPlans)
		r.Get("/methods", s.handleListMethods)
		r.Get("/wallpapers", s.handleListWallpapers)
		r.Get("/categories", s.handleListCategories)
		r.Get("/entitlement", s.handleEntitlement)

		r.Route("/purchase", func(r chi.Router) {
			r.Post("/", s.handleStartAttempt)
			r.Route("/{attemptID}", func(r chi.Router) {
				r.Get("/", s.handleGetAttempt)
				r.Post("/method", s.handleSelectMethod)
				r.Delete("/method", s.handleChangeMethod)
				r.Post("/evidence", s.handleSubmitEvidence)
				r.Post("/cancel", s.handleCancel)
			})
		})
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Post("/login", s.handleAdminLogin)
		r.With(s.auth.Middleware).Get("/attempts", s.handleAdminAttempts)
	})

	return r
}

// ---------------- DTOs ----------------

type planDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended,omitempty"`
}

type methodDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

type wallpaperDTO struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Premium  bool     `json:"is_premium"`
	Is3D     bool     `json:"is_3d"`
	Likes    int      `json:"likes"`
	Tags     []string `json:"tags"`
}

type attemptDTO struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	State         string     `json:"state"`
	Plan          planDTO    `json:"plan"`
	Method        *methodDTO `json:"method,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toPlanDTO(p *model.Plan) planDTO {
	return planDTO{ID: p.ID, Name: p.Name, Price: p.PricePKR, Duration: p.Duration, Features: p.Features, Recommended: p.Recommended}
}

func toMethodDTO(m *model.PaymentMethod) *methodDTO {
	if m == nil {
		return nil
	}
	return &methodDTO{ID: m.ID, Name: m.Name, AccountName: m.AccountName, AccountNumber: m.AccountNumber}
}

func toAttemptDTO(a model.AttemptSnapshot) attemptDTO {
	return attemptDTO{
		ID:            a.ID,
		UserID:        a.UserID,
		State:         string(a.State),
		Plan:          toPlanDTO(a.Plan),
		Method:        toMethodDTO(a.Method),
		FailureReason: a.LastFailureReason,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ---------------- catalog handlers ----------------

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.planUC.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]planDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanDTO(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.planUC.Methods(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]*methodDTO, 0, len(methods))
	for _, m := range methods {
		out = append(out, toMethodDTO(m))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListWallpapers(w http.ResponseWriter, r *http.Request) {
	walls, err := s.catalogUC.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]wallpaperDTO, 0, len(walls))
	for _, wp := range walls {
		out = append(out, wallpaperDTO{
			ID: wp.ID, URL: wp.URL, Title: wp.Title, Category: wp.Category,
			Premium: wp.Premium, Is3D: wp.Is3D, Likes: wp.Likes, Tags: wp.Tags,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalogUC.Categories())
}

func (s *Server) handleEntitlement(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	ent, err := s.entUC.Get(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ent)
}

// ---------------- purchase handlers ----------------

func (s *Server) handleStartAttempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		PlanID string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.PlanID == "" {
		http.Error(w, "user_id and plan_id are required", http.StatusBadRequest)
		return
	}
	snap, err := s.purchaseUC.Start(r.Context(), req.UserID, req.PlanID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toAttemptDTO(snap))
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	snap, err := s.purchaseUC.Get(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAttemptDTO(snap))
}

func (s *Server) handleSelectMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MethodID string `json:"method_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MethodID == "" {
		http.Error(w, "method_id is required", http.StatusBadRequest)
		return
	}
	snap, err := s.purchaseUC.SelectMethod(r.Context(), chi.URLParam(r, "attemptID"), req.MethodID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAttemptDTO(snap))
}

func (s *Server) handleChangeMethod(w http.ResponseWriter, r *http.Request) {
	snap, err := s.purchaseUC.ChangeMethod(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAttemptDTO(snap))
}

// handleSubmitEvidence takes the receipt screenshot as base64 so the bytes
// round-trip exactly to what the classifier receives.
func (s *Server) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"` // base64-encoded screenshot
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		http.Error(w, "image must be valid base64", http.StatusBadRequest)
		return
	}
	snap, err := s.purchaseUC.SubmitEvidence(r.Context(), chi.URLParam(r, "attemptID"), image)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, toAttemptDTO(snap))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.purchaseUC.Cancel(r.Context(), chi.URLParam(r, "attemptID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- admin handlers ----------------

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if s.adminPassword == "" || req.Password != s.adminPassword {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("mint admin session")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleAdminAttempts(w http.ResponseWriter, r *http.Request) {
	snaps := s.purchaseUC.ListOpen(r.Context())
	out := make([]attemptDTO, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, toAttemptDTO(snap))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// ---------------- helpers ----------------

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("write json response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrUnknownMethod), errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrVerificationInFlight):
		http.Error(w, "verification already in progress", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAttemptFinished),
		errors.Is(err, domain.ErrAttemptCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
