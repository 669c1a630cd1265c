package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AlfredoMejia3001/facturacion/internal/http/events"
	"github.com/AlfredoMejia3001/facturacion/internal/http/export"
	"github.com/AlfredoMejia3001/facturacion/internal/http/importcsv"
	"github.com/AlfredoMejia3001/facturacion/internal/http/invoice"
)

func New(
	invoicesV1 *invoice.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	eventsV1 *events.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			invoicesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)

		r.Route("/events", eventsV1.Routes)
	})

	return router
}
