package invoice

import "github.com/shopspring/decimal"

// Stats summarizes a collection for the dashboard header cards.
type Stats struct {
	Total         int
	Paid          int
	Pending       int
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
}

// Summarize computes counts and amount totals per payment state.
func Summarize(invoices []Invoice) Stats {
	stats := Stats{
		Total:         len(invoices),
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}

	for _, inv := range invoices {
		stats.TotalAmount = stats.TotalAmount.Add(inv.Amount)

		switch inv.Status {
		case StatusPaid:
			stats.Paid++
			stats.PaidAmount = stats.PaidAmount.Add(inv.Amount)
		case StatusPending:
			stats.Pending++
			stats.PendingAmount = stats.PendingAmount.Add(inv.Amount)
		}
	}

	return stats
}
