package web

import (
	"net/http"
	"path/filepath"

	"invoice-manager/internal/app"
)

// apiGenerateInvoice handles POST /api/invoice/generate.
func (h *Handler) apiGenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.GenerateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PONumber == "" {
		writeError(w, r, "poNumber is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GenerateInvoice(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, result)
}

// apiSendInvoice handles POST /api/invoice/send/{id}?markSent=false.
func (h *Handler) apiSendInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	markSent, ok := boolQuery(w, r, "markSent", true)
	if !ok {
		return
	}
	result, err := h.svc.SendInvoice(r.Context(), app.SendInvoiceRequest{InvoiceID: id, MarkSent: markSent})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiListInvoices handles GET /api/invoice.
func (h *Handler) apiListInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetInvoice handles GET /api/invoice/{id}.
func (h *Handler) apiGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

// apiDownloadInvoice handles GET /api/invoice/{id}/download.
func (h *Handler) apiDownloadInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	path, err := h.svc.InvoicePDF(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
