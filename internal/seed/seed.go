// Package seed loads the demo dataset the dashboard ships with.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

type demoInvoice struct {
	number   string
	customer string
	date     string
	amount   string
	status   invoice.Status
}

var demoInvoices = []demoInvoice{
	{"INV-2024-001", "Empresa ABC S.A.", "2024-01-15", "1250.50", invoice.StatusPaid},
	{"INV-2024-002", "Comercial XYZ Ltda.", "2024-01-18", "2890.00", invoice.StatusPending},
	{"INV-2024-003", "Servicios DEF Corp.", "2024-01-20", "750.25", invoice.StatusPaid},
	{"INV-2024-004", "Industrias GHI S.A.S.", "2024-01-22", "4200.00", invoice.StatusPending},
	{"INV-2024-005", "Distribuciones JKL", "2024-01-25", "1800.75", invoice.StatusPaid},
	{"INV-2024-006", "Consultores MNO", "2024-01-28", "950.00", invoice.StatusPending},
	{"INV-2024-007", "Tecnología PQR", "2024-02-01", "3500.25", invoice.StatusPaid},
	{"INV-2024-008", "Logística STU", "2024-02-03", "2150.00", invoice.StatusPending},
}

// Demo replaces the store contents with the demo dataset.
func Demo(st *store.Store) {
	invoices := make([]invoice.Invoice, 0, len(demoInvoices))

	for _, d := range demoInvoices {
		date, _ := time.Parse(time.DateOnly, d.date)

		invoices = append(invoices, invoice.Invoice{
			ID:           uuid.New(),
			Number:       d.number,
			CustomerName: d.customer,
			Date:         date,
			Amount:       decimal.RequireFromString(d.amount),
			Status:       d.status,
		})
	}

	st.Load(invoices)
}
