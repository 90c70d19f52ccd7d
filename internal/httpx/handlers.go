package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/AngelCh415/atelier/internal/auth"
	"github.com/AngelCh415/atelier/internal/cpq"
	"github.com/AngelCh415/atelier/internal/mail"
	"github.com/AngelCh415/atelier/internal/models"
	"github.com/AngelCh415/atelier/internal/optimizer"
	"github.com/AngelCh415/atelier/internal/store"
	"github.com/AngelCh415/atelier/internal/utils"
)

const (
	headerTenant = "X-Tenant-ID"
	headerUser   = "X-User-ID"
)

// record completa tenant, actor e IP desde el request si faltan.
func (a *api) record(r *http.Request, e models.AuditEntry) models.AuditEntry {
	if e.TenantID == "" {
		e.TenantID = r.Header.Get(headerTenant)
	}
	if e.Actor == "" {
		e.Actor = r.Header.Get(headerUser)
	}
	e.IP = utils.ClientIP(r)
	e = a.Audit.Append(e)
	a.Metrics.SetAuditSize(a.Audit.Len())
	return e
}

func (a *api) optimizeSpend(w http.ResponseWriter, r *http.Request) {
	var in models.OptimizationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res := a.Allocator.Allocate(in)

	var total int64
	for _, x := range res {
		total += x.RecommendedBudget
	}
	a.Metrics.ObserveAllocation(total)
	a.record(r, models.AuditEntry{
		Action:   "optimize.spend",
		Resource: "marketing-budget",
		Details:  map[string]any{"channels": len(in.Channels), "funded": len(res), "allocated": total},
	})
	a.Log.Debug("spend allocated", slog.String("rid", utils.RID(r.Context())), slog.Int("funded", len(res)))
	writeJSON(w, res)
}

func (a *api) roi(w http.ResponseWriter, r *http.Request) {
	var in models.ROIInput
	if !decodeJSON(w, r, &in) {
		return
	}
	writeJSON(w, optimizer.ComputeROI(in.Investment, in.Leads, in.Conversions, in.AvgProjectValue))
}

func (a *api) tiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.CPQ.Tiers())
}

func (a *api) quote(w http.ResponseWriter, r *http.Request) {
	var in models.QuoteRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	q := a.CPQ.CalculateQuotePrice(in.TierID, in.Customizations, in.ProjectSize, in.Urgency)
	tierID := ""
	if q.Tier != nil {
		tierID = q.Tier.ID
	}
	a.Metrics.ObserveQuote(tierID)
	a.record(r, models.AuditEntry{
		Action:   "cpq.quote",
		Resource: in.TierID,
		Details:  map[string]any{"totalPrice": q.TotalPrice, "known": q.Tier != nil},
	})
	writeJSON(w, q)
}

func (a *api) discount(w http.ResponseWriter, r *http.Request) {
	var in models.DiscountRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.BasePrice < 0 {
		writeError(w, http.StatusBadRequest, "basePrice must be >= 0")
		return
	}
	writeJSON(w, cpq.CalculateDiscount(in.BasePrice, in.Conditions))
}

func (a *api) listAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tenant := q.Get("tenant")
	if tenant == "" {
		tenant = r.Header.Get(headerTenant)
	}
	writeJSON(w, a.Audit.List(store.Filter{
		TenantID: tenant,
		Action:   q.Get("action"),
		Limit:    atoiDef(q.Get("limit"), 0),
		Offset:   atoiDef(q.Get("offset"), 0),
	}))
}

type auditRequest struct {
	Action   string         `json:"action"`
	Resource string         `json:"resource"`
	Actor    string         `json:"actor"`
	Details  map[string]any `json:"details"`
}

func (a *api) appendAudit(w http.ResponseWriter, r *http.Request) {
	var in auditRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Action) == "" {
		writeError(w, http.StatusBadRequest, "action required")
		return
	}
	e := a.record(r, models.AuditEntry{Actor: in.Actor, Action: in.Action, Resource: in.Resource, Details: in.Details})
	writeJSONStatus(w, http.StatusCreated, e)
}

type previewRequest struct {
	Template string          `json:"template"`
	Data     json.RawMessage `json:"data"`
}

func (a *api) emailPreview(w http.ResponseWriter, r *http.Request) {
	var in previewRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := mail.Component(in.Template, func(v any) error {
		if len(in.Data) == 0 {
			return nil
		}
		return json.Unmarshal(in.Data, v)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	html, err := mail.Render(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (a *api) signup(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	reg, err := a.Auth.Register(r.Context(), in)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	a.record(r, models.AuditEntry{
		TenantID: reg.Membership.TenantID,
		Actor:    reg.User.ID,
		Action:   "auth.signup",
		Resource: "user",
		Details:  map[string]any{"role": reg.Membership.Role},
	})
	writeJSONStatus(w, http.StatusCreated, reg)
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var in auth.LoginRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	sess, err := a.Auth.Login(r.Context(), in)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	a.record(r, models.AuditEntry{Actor: sess.User.ID, Action: "auth.login", Resource: "session"})
	writeJSON(w, sess)
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusBadGateway, "identity provider unavailable")
	}
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
