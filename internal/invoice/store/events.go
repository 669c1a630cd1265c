package store

import (
	"github.com/AlfredoMejia3001/facturacion/internal/importer"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

// EventKind identifies a store notification.
type EventKind string

const (
	EventInvoiceAdded   EventKind = "invoice-added"
	EventInvoiceUpdated EventKind = "invoice-updated"
	EventImportComplete EventKind = "csv-import-completed"
)

// UpdateType distinguishes a generic field update from the payment
// transition, so the toast layer can word the two differently.
type UpdateType string

const (
	UpdateGeneric UpdateType = "update"
	UpdatePayment UpdateType = "payment"
)

// Event is a store notification. Invoice is set for invoice-added and
// invoice-updated, Update only for invoice-updated, and Import only for
// csv-import-completed.
type Event struct {
	Kind    EventKind
	Update  UpdateType
	Invoice *invoice.Invoice
	Import  *importer.BatchResult
}
