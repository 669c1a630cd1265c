package invoice

import "strings"

// FilterSpec holds the active query constraints applied to derive the
// filtered view. Empty fields impose no constraint. Date bounds are kept
// as raw strings so a malformed value degrades to "unconstrained" instead
// of failing the whole filter.
type FilterSpec struct {
	Status       string
	CustomerName string
	DateFrom     string
	DateTo       string
}

// IsZero reports whether no constraint is active.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// FilterPatch is a partial FilterSpec. Nil fields are left untouched by a
// merge; non-nil fields overwrite, including overwriting with "".
type FilterPatch struct {
	Status       *string
	CustomerName *string
	DateFrom     *string
	DateTo       *string
}

// Merge returns f with the non-nil fields of the patch applied.
func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	if p.Status != nil {
		f.Status = *p.Status
	}

	if p.CustomerName != nil {
		f.CustomerName = *p.CustomerName
	}

	if p.DateFrom != nil {
		f.DateFrom = *p.DateFrom
	}

	if p.DateTo != nil {
		f.DateTo = *p.DateTo
	}

	return f
}

// Apply returns the ordered subsequence of invoices satisfying every
// active constraint of the spec. It never mutates its inputs and never
// fails: unparseable date bounds are ignored.
func Apply(invoices []Invoice, spec FilterSpec) []Invoice {
	out := make([]Invoice, 0, len(invoices))

	for _, inv := range invoices {
		if matches(inv, spec) {
			out = append(out, inv)
		}
	}

	return out
}

func matches(inv Invoice, spec FilterSpec) bool {
	if spec.Status != "" && string(inv.Status) != spec.Status {
		return false
	}

	if spec.CustomerName != "" {
		needle := strings.ToLower(spec.CustomerName)
		if !strings.Contains(strings.ToLower(inv.CustomerName), needle) {
			return false
		}
	}

	if spec.DateFrom != "" {
		if from, err := ParseDate(spec.DateFrom); err == nil && inv.Date.Before(from) {
			return false
		}
	}

	if spec.DateTo != "" {
		if to, err := ParseDate(spec.DateTo); err == nil && inv.Date.After(to) {
			return false
		}
	}

	return true
}

// Search returns the invoices whose number, customer, status or amount
// text contains the term, case-insensitively. An empty term matches
// nothing.
func Search(invoices []Invoice, term string) []Invoice {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Invoice{}
	}

	lower := strings.ToLower(term)
	out := make([]Invoice, 0, len(invoices))

	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.Number), lower) ||
			strings.Contains(strings.ToLower(inv.CustomerName), lower) ||
			strings.Contains(strings.ToLower(string(inv.Status)), lower) ||
			strings.Contains(inv.Amount.String(), term) {
			out = append(out, inv)
		}
	}

	return out
}
