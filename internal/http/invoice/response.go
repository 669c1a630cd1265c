package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

// JSON field names follow the dashboard's camelCase contract.
type invoiceResponse struct {
	ID            uuid.UUID      `json:"id"`
	InvoiceNumber string         `json:"invoiceNumber"`
	CustomerName  string         `json:"customerName"`
	Date          string         `json:"date"`
	Amount        string         `json:"amount"`
	Status        invoice.Status `json:"status"`
}

type statsResponse struct {
	Total         int    `json:"total"`
	Paid          int    `json:"paid"`
	Pending       int    `json:"pending"`
	TotalAmount   string `json:"totalAmount"`
	PaidAmount    string `json:"paidAmount"`
	PendingAmount string `json:"pendingAmount"`
}

type filtersResponse struct {
	Status       string `json:"status"`
	CustomerName string `json:"customerName"`
	DateFrom     string `json:"dateFrom"`
	DateTo       string `json:"dateTo"`
}

func toResponse(inv invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.Number,
		CustomerName:  inv.CustomerName,
		Date:          inv.Date.Format(time.DateOnly),
		Amount:        inv.Amount.StringFixed(2),
		Status:        inv.Status,
	}
}

func toResponseList(invoices []invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}

func toStatsResponse(stats invoice.Stats) statsResponse {
	return statsResponse{
		Total:         stats.Total,
		Paid:          stats.Paid,
		Pending:       stats.Pending,
		TotalAmount:   stats.TotalAmount.StringFixed(2),
		PaidAmount:    stats.PaidAmount.StringFixed(2),
		PendingAmount: stats.PendingAmount.StringFixed(2),
	}
}

func toFiltersResponse(spec invoice.FilterSpec) filtersResponse {
	return filtersResponse{
		Status:       spec.Status,
		CustomerName: spec.CustomerName,
		DateFrom:     spec.DateFrom,
		DateTo:       spec.DateTo,
	}
}
