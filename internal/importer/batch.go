package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

// amountEpsilon is the tolerance under which two amounts are considered
// equal when testing for duplicates, to absorb rounding differences
// between exports.
var amountEpsilon = decimal.RequireFromString("0.01")

// Rejected is a row that was not admitted, with enough context for a
// per-row diagnostic in the import summary.
type Rejected struct {
	Line   int
	Fields map[Field]string
	Reason string
}

// BatchResult buckets every row of an import into exactly one outcome.
type BatchResult struct {
	Imported   []invoice.Invoice
	Duplicates []Rejected
	Errors     []Rejected
}

// ClassifyBatch evaluates rows in input order against the pre-batch
// existing collection and sorts each into imported, duplicate or error.
// One row's outcome never affects another's; merging the imported bucket
// into the canonical collection is the caller's job.
//
// Rows are deliberately not checked against earlier rows of the same
// batch, matching the dashboard's historical behavior: two identical rows
// in one file both import.
func ClassifyBatch(rows []RawRow, existing []invoice.Invoice) BatchResult {
	var result BatchResult

	for _, row := range rows {
		if dup, reason := findDuplicate(row, existing); dup {
			result.Duplicates = append(result.Duplicates, Rejected{
				Line:   row.Line,
				Fields: row.Fields,
				Reason: reason,
			})

			continue
		}

		inv, reason := buildInvoice(row)
		if reason != "" {
			result.Errors = append(result.Errors, Rejected{
				Line:   row.Line,
				Fields: row.Fields,
				Reason: reason,
			})

			continue
		}

		result.Imported = append(result.Imported, inv)
	}

	return result
}

// findDuplicate reports whether the row collides with an existing record:
// either the invoice number matches exactly, or the customer and date
// match and the amounts differ by less than a cent.
func findDuplicate(row RawRow, existing []invoice.Invoice) (bool, string) {
	number := row.Fields[FieldNumber]
	customer := row.Fields[FieldCustomer]

	date, dateOK := parseDateCell(row)
	amount, amountOK := parseAmountCell(row)

	for _, inv := range existing {
		if number != "" && inv.Number == number {
			return true, fmt.Sprintf("invoice number %s already exists", number)
		}

		if !dateOK || !amountOK {
			continue
		}

		if inv.CustomerName == customer && inv.Date.Equal(date) &&
			inv.Amount.Sub(amount).Abs().LessThan(amountEpsilon) {
			return true, fmt.Sprintf("matches existing invoice %s", inv.Number)
		}
	}

	return false, ""
}

// buildInvoice validates the row and constructs the record to admit.
// An empty reason means success.
func buildInvoice(row RawRow) (invoice.Invoice, string) {
	number := row.Fields[FieldNumber]
	customer := row.Fields[FieldCustomer]
	dateCell := row.Fields[FieldDate]
	amountCell := row.Fields[FieldAmount]

	if number == "" || customer == "" || dateCell == "" || amountCell == "" {
		return invoice.Invoice{}, "missing required fields"
	}

	amount, err := invoice.ParseAmount(amountCell)
	if err != nil || !amount.IsPositive() {
		return invoice.Invoice{}, "invalid amount"
	}

	date, err := invoice.ParseDate(dateCell)
	if err != nil {
		return invoice.Invoice{}, "invalid date"
	}

	return invoice.Invoice{
		ID:           uuid.New(),
		Number:       number,
		CustomerName: customer,
		Date:         date,
		Amount:       amount,
		Status:       invoice.NormalizeStatus(row.Fields[FieldStatus]),
	}, ""
}

func parseDateCell(row RawRow) (time.Time, bool) {
	date, err := invoice.ParseDate(row.Fields[FieldDate])
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}

func parseAmountCell(row RawRow) (decimal.Decimal, bool) {
	amount, err := invoice.ParseAmount(row.Fields[FieldAmount])
	if err != nil {
		return decimal.Decimal{}, false
	}

	return amount, true
}
