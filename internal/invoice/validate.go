package invoice

import "strings"

// Candidate is a loosely typed invoice as it arrives from a form or a CSV
// row, before any field has been parsed.
type Candidate struct {
	Number       string
	CustomerName string
	Date         string
	Amount       string
	Status       string
}

// Validation reports per-field validity of a Candidate.
type Validation struct {
	Number       bool
	CustomerName bool
	Date         bool
	Amount       bool
	Status       bool
}

// OK reports whether every field passed validation.
func (v Validation) OK() bool {
	return v.Number && v.CustomerName && v.Date && v.Amount && v.Status
}

// Validate checks each field of a candidate independently. It has no side
// effects and is used both by the creation form pre-check and by the CSV
// import pipeline.
func Validate(c Candidate) Validation {
	var v Validation

	v.Number = strings.TrimSpace(c.Number) != ""
	v.CustomerName = strings.TrimSpace(c.CustomerName) != ""

	if _, err := ParseDate(c.Date); err == nil {
		v.Date = true
	}

	if amount, err := ParseAmount(c.Amount); err == nil && amount.IsPositive() {
		v.Amount = true
	}

	if _, err := ParseStatus(c.Status); err == nil {
		v.Status = true
	}

	return v
}
