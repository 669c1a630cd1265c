package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlfredoMejia3001/facturacion/internal/export"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.exportCSV)
}

// exportCSV streams the current filtered view as a CSV download.
func (h *Handler) exportCSV(w http.ResponseWriter, _ *http.Request) {
	invoices := h.store.Filtered()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if err := export.WriteCSV(w, invoices); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}
