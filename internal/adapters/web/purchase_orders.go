package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-manager/internal/core"
)

// apiCreatePurchaseOrder handles POST /api/po.
func (h *Handler) apiCreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var input core.PurchaseOrderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	po, err := h.svc.CreatePurchaseOrder(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, po)
}

// apiListPurchaseOrders handles GET /api/po.
func (h *Handler) apiListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPurchaseOrders(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetPurchaseOrder handles GET /api/po/{poNumber}.
func (h *Handler) apiGetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po, err := h.svc.GetPurchaseOrder(r.Context(), chi.URLParam(r, "poNumber"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, po)
}

// apiUpdatePurchaseOrder handles PUT /api/po/{poNumber}.
func (h *Handler) apiUpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var update core.PurchaseOrderUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	po, err := h.svc.UpdatePurchaseOrder(r.Context(), chi.URLParam(r, "poNumber"), update)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, po)
}

// apiDeletePurchaseOrder handles DELETE /api/po/{poNumber}?force=true.
func (h *Handler) apiDeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	force, ok := boolQuery(w, r, "force", false)
	if !ok {
		return
	}
	poNumber := chi.URLParam(r, "poNumber")
	if err := h.svc.DeletePurchaseOrder(r.Context(), poNumber, force); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"deleted": poNumber, "forced": force})
}
