// Package export writes the currently filtered invoice view as a CSV
// download for the dashboard's export button.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

// ContentType is the MIME type of the generated file.
const ContentType = "text/csv; charset=utf-8"

var header = []string{"Invoice Number", "Customer", "Date", "Status", "Amount (USD)"}

// Filename returns the download name for an export generated at t,
// e.g. invoices_2026-09-01.csv.
func Filename(t time.Time) string {
	return fmt.Sprintf("invoices_%s.csv", t.Format(time.DateOnly))
}

// WriteCSV writes the header row followed by one row per invoice.
// encoding/csv quotes customer names containing commas or quotes.
func WriteCSV(w io.Writer, invoices []invoice.Invoice) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, inv := range invoices {
		record := []string{
			inv.Number,
			inv.CustomerName,
			inv.Date.Format(time.DateOnly),
			string(inv.Status),
			inv.Amount.StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", inv.Number, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
