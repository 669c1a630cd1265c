// Package events bridges store notifications to the dashboard over
// server-sent events, replacing the ambient browser event bus the toast
// layer and statistics cards used to listen on.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

// subscriberBuffer is the per-client event queue. A client that stalls
// past it misses events rather than blocking the store.
const subscriberBuffer = 16

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stream)
}

type eventPayload struct {
	Type    string `json:"type,omitempty"`
	Invoice any    `json:"invoice,omitempty"`
	Results any    `json:"results,omitempty"`
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := make(chan store.Event, subscriberBuffer)

	unsubscribe := h.store.Subscribe(func(e store.Event) {
		select {
		case ch <- e:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-ch:
			if err := writeEvent(w, e); err != nil {
				slog.Debug("dropping event stream client", "error", err)
				return
			}

			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, e store.Event) error {
	payload := eventPayload{}

	switch e.Kind {
	case store.EventInvoiceAdded:
		payload.Invoice = e.Invoice
	case store.EventInvoiceUpdated:
		payload.Type = string(e.Update)
		payload.Invoice = e.Invoice
	case store.EventImportComplete:
		payload.Results = e.Import
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)

	return err
}
