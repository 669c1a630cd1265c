package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

func TestSummarize(t *testing.T) {
	stats := invoice.Summarize(testCollection())

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Paid)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, "10891.50", stats.TotalAmount.StringFixed(2))
	assert.Equal(t, "3801.50", stats.PaidAmount.StringFixed(2))
	assert.Equal(t, "7090.00", stats.PendingAmount.StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	stats := invoice.Summarize(nil)

	assert.Equal(t, 0, stats.Total)
	assert.True(t, stats.TotalAmount.IsZero())
	assert.True(t, stats.PaidAmount.IsZero())
	assert.True(t, stats.PendingAmount.IsZero())
}
