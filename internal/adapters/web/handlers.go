package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invoice-manager/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes. An empty jwtSecret
// leaves the API unauthenticated.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		if jwtSecret != "" {
			r.Use(h.RequireAuth)
		}
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// ── Companies ─────────────────────────────────────────────────────────
		r.Post("/api/company/our", h.apiCreateOurCompany)
		r.Get("/api/company/our", h.apiGetOurCompany)
		r.Put("/api/company/our", h.apiUpdateOurCompany)
		r.Post("/api/company/client", h.apiCreateClient)
		r.Get("/api/company/client", h.apiListClients)
		r.Get("/api/company/client/{id}", h.apiGetClient)

		// ── Purchase orders ──────────────────────────────────────────────────
		r.Post("/api/po", h.apiCreatePurchaseOrder)
		r.Get("/api/po", h.apiListPurchaseOrders)
		r.Get("/api/po/{poNumber}", h.apiGetPurchaseOrder)
		r.Put("/api/po/{poNumber}", h.apiUpdatePurchaseOrder)
		r.Delete("/api/po/{poNumber}", h.apiDeletePurchaseOrder)

		// ── Invoices ─────────────────────────────────────────────────────────
		r.Post("/api/invoice/generate", h.apiGenerateInvoice)
		r.Post("/api/invoice/send/{id}", h.apiSendInvoice)
		r.Get("/api/invoice", h.apiListInvoices)
		r.Get("/api/invoice/{id}", h.apiGetInvoice)
		r.Get("/api/invoice/{id}/download", h.apiDownloadInvoice)
	})

	h.router = r
	return r
}

// health returns service status, the configured company name and whether setup is pending.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Health(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// intParam parses a numeric URL parameter, writing a 400 on failure.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeError(w, r, "invalid "+name+": must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// boolQuery parses an optional boolean query parameter, writing a 400 on failure.
func boolQuery(w http.ResponseWriter, r *http.Request, name string, def bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, r, "invalid "+name+": must be true or false", "BAD_REQUEST", http.StatusBadRequest)
		return false, false
	}
	return v, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
