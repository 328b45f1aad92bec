package web

import (
	"net/http"

	"invoice-manager/internal/core"
)

// apiCreateOurCompany handles POST /api/company/our.
func (h *Handler) apiCreateOurCompany(w http.ResponseWriter, r *http.Request) {
	var input core.OurCompanyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	company, err := h.svc.SetupCompany(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, company)
}

// apiGetOurCompany handles GET /api/company/our.
func (h *Handler) apiGetOurCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.svc.GetCompany(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, company)
}

// apiUpdateOurCompany handles PUT /api/company/our.
func (h *Handler) apiUpdateOurCompany(w http.ResponseWriter, r *http.Request) {
	var input core.OurCompanyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	company, err := h.svc.UpdateCompany(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, company)
}

// apiCreateClient handles POST /api/company/client.
func (h *Handler) apiCreateClient(w http.ResponseWriter, r *http.Request) {
	var input core.ClientCompanyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	client, err := h.svc.AddClient(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, client)
}

// apiListClients handles GET /api/company/client.
func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListClients(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetClient handles GET /api/company/client/{id}.
func (h *Handler) apiGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, client)
}
