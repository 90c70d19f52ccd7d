package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AngelCh415/atelier/internal/auth"
	"github.com/AngelCh415/atelier/internal/cpq"
	"github.com/AngelCh415/atelier/internal/metrics"
	"github.com/AngelCh415/atelier/internal/optimizer"
	"github.com/AngelCh415/atelier/internal/store"
	"github.com/AngelCh415/atelier/internal/utils"
)

type Deps struct {
	Log       *slog.Logger
	Allocator *optimizer.Allocator
	CPQ       *cpq.Calculator
	Audit     *store.AuditLog
	Auth      *auth.Service
	Metrics   *metrics.Recorder
	Limiter   *utils.RateLimiter
}

type api struct{ Deps }

func NewRouter(d Deps) http.Handler {
	a := &api{Deps: d}
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	mux.Use(d.Metrics.Middleware)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	mux.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}

		r.Route("/api", func(r chi.Router) {
			r.Post("/optimize/spend", a.optimizeSpend)
			r.Post("/optimize/roi", a.roi)

			r.Get("/cpq/tiers", a.tiers)
			r.Post("/cpq/quote", a.quote)
			r.Post("/cpq/discount", a.discount)

			r.Get("/audit-log", a.listAudit)
			r.Post("/audit-log", a.appendAudit)

			r.Post("/email/preview", a.emailPreview)
		})

		r.Post("/auth/signup", a.signup)
		r.Post("/auth/login", a.login)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSONStatus(w, code, map[string]string{"error": msg})
}

const maxBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}
