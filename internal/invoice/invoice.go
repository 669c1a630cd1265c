package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
)

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidCustomer = errors.New("customer name is required")
	ErrInvalidStatus   = errors.New("unknown invoice status")
	ErrAlreadyPaid     = errors.New("invoice is already paid")
)

// Invoice represents a billing record.
type Invoice struct {
	ID           uuid.UUID
	Number       string
	CustomerName string
	Date         time.Time
	Amount       decimal.Decimal
	Status       Status
}

// CreateParams carries the fields of a new invoice before an ID and
// invoice number are assigned.
type CreateParams struct {
	CustomerName string
	Date         time.Time
	Amount       decimal.Decimal
	Status       Status
}

// ParseStatus maps a raw status string to a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return StatusPaid, nil
	case "pending":
		return StatusPending, nil
	}

	return "", ErrInvalidStatus
}

// NormalizeStatus maps a loosely formatted status cell to a Status.
// Anything containing a "paid" token (English or Spanish) counts as paid;
// everything else, including an empty cell, defaults to pending.
func NormalizeStatus(s string) Status {
	lower := strings.ToLower(strings.TrimSpace(s))
	if strings.Contains(lower, "paid") || strings.Contains(lower, "pagad") {
		return StatusPaid
	}

	return StatusPending
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// ParseDate parses a date cell in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var lastErr error

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}

// ParseAmount parses a monetary cell into a decimal. Currency symbols and
// thousands separators are tolerated ("$1,250.50" -> 1250.50).
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")

	return decimal.NewFromString(clean)
}
