package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/stats", h.stats)
	r.Get("/search", h.search)
	r.Get("/filters", h.filters)
	r.Put("/filters", h.setFilters)
	r.Delete("/filters", h.clearFilters)
	r.Get("/detail", h.detail)
	r.Delete("/detail", h.closeDetail)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pay", h.pay)
	r.Post("/{id}/detail", h.openDetail)
}

// list returns the filtered view by default; ?view=all returns the full
// canonical collection.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices := h.store.Filtered()
	if r.URL.Query().Get("view") == "all" {
		invoices = h.store.Invoices()
	}

	writeJSON(w, http.StatusOK, toResponseList(invoices))
}

type createInvoiceRequest struct {
	CustomerName string          `json:"customerName"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Status       invoice.Status  `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := invoice.ParseDate(req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	inv, err := h.store.Add(invoice.CreateParams{
		CustomerName: req.CustomerName,
		Date:         date,
		Amount:       req.Amount,
		Status:       req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

type updateInvoiceRequest struct {
	CustomerName *string          `json:"customerName,omitempty"`
	Date         *string          `json:"date,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Status       *invoice.Status  `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := store.UpdatePatch{
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		Status:       req.Status,
	}

	if req.Date != nil {
		date, err := invoice.ParseDate(*req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		patch.Date = &date
	}

	inv, err := h.store.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.store.MarkPaid(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStatsResponse(h.store.Stats()))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, toResponseList(h.store.Search(term)))
}

func (h *Handler) filters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toFiltersResponse(h.store.Filters()))
}

type setFiltersRequest struct {
	Status       *string `json:"status,omitempty"`
	CustomerName *string `json:"customerName,omitempty"`
	DateFrom     *string `json:"dateFrom,omitempty"`
	DateTo       *string `json:"dateTo,omitempty"`
}

func (h *Handler) setFilters(w http.ResponseWriter, r *http.Request) {
	var req setFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.store.SetFilters(invoice.FilterPatch{
		Status:       req.Status,
		CustomerName: req.CustomerName,
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
	})

	writeJSON(w, http.StatusOK, toResponseList(h.store.Filtered()))
}

func (h *Handler) clearFilters(w http.ResponseWriter, _ *http.Request) {
	h.store.ClearFilters()
	writeJSON(w, http.StatusOK, toResponseList(h.store.Filtered()))
}

func (h *Handler) openDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.store.OpenDetail(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) detail(w http.ResponseWriter, _ *http.Request) {
	inv, ok := h.store.Detail()
	if !ok {
		http.Error(w, "no invoice under inspection", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) closeDetail(w http.ResponseWriter, _ *http.Request) {
	h.store.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	case errors.Is(err, invoice.ErrAlreadyPaid):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrInvalidCustomer),
		errors.Is(err, invoice.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
