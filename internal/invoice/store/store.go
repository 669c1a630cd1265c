// Package store owns the canonical invoice collection, the active filter
// and the derived filtered view. It is the single mutation authority:
// everything else reads copies of its state and invokes its operations.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlfredoMejia3001/facturacion/internal/importer"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
)

// Store holds the invoice collection in memory. The filtered view is
// recomputed wholesale after every mutation rather than patched
// incrementally; at dashboard scale (tens to low thousands of records)
// full recomputation keeps the filter logic trivially correct.
type Store struct {
	mu       sync.Mutex
	invoices []invoice.Invoice
	filtered []invoice.Invoice
	filters  invoice.FilterSpec
	detail   *invoice.Invoice

	subs    map[int]func(Event)
	nextSub int

	now func() time.Time
}

func New() *Store {
	return &Store{
		invoices: []invoice.Invoice{},
		filtered: []invoice.Invoice{},
		subs:     make(map[int]func(Event)),
		now:      time.Now,
	}
}

// Subscribe registers an observer for store events and returns its
// disposer. Dispatch is synchronous and each observer sees every event
// exactly once; ordering between observers is unspecified.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// notify dispatches outside the store lock so observers may call back in.
func (s *Store) notify(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))

	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Invoices returns a copy of the canonical collection.
func (s *Store) Invoices() []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyInvoices(s.invoices)
}

// Filtered returns a copy of the current filtered view.
func (s *Store) Filtered() []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyInvoices(s.filtered)
}

// Filters returns the active filter spec.
func (s *Store) Filters() invoice.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters
}

// Get returns the invoice with the given id.
func (s *Store) Get(id uuid.UUID) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	return s.invoices[idx], nil
}

// Stats summarizes the canonical collection.
func (s *Store) Stats() invoice.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return invoice.Summarize(s.invoices)
}

// Search runs a global substring search over the canonical collection.
func (s *Store) Search(term string) []invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return invoice.Search(s.invoices, term)
}

// SetFilters merges the patch into the active filter spec and recomputes
// the filtered view.
func (s *Store) SetFilters(patch invoice.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = s.filters.Merge(patch)
	s.refilter()
}

// ClearFilters resets every constraint; the filtered view becomes the
// full canonical collection.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = invoice.FilterSpec{}
	s.refilter()
}

// Load replaces the canonical collection wholesale, used for seeding.
// No event is emitted.
func (s *Store) Load(invoices []invoice.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = copyInvoices(invoices)
	s.refilter()
}

// Add validates the params, assigns a fresh id and the next invoice
// number for the current year, appends the record and emits
// invoice-added. Validation here is deliberate defense in depth: the
// creation form checks the same rules, but the store never admits a
// non-positive amount.
func (s *Store) Add(params invoice.CreateParams) (invoice.Invoice, error) {
	s.mu.Lock()

	if params.CustomerName == "" {
		s.mu.Unlock()
		return invoice.Invoice{}, invoice.ErrInvalidCustomer
	}

	if !params.Amount.IsPositive() {
		s.mu.Unlock()
		return invoice.Invoice{}, invoice.ErrInvalidAmount
	}

	status := params.Status
	if status == "" {
		status = invoice.StatusPending
	}

	if status != invoice.StatusPaid && status != invoice.StatusPending {
		s.mu.Unlock()
		return invoice.Invoice{}, invoice.ErrInvalidStatus
	}

	inv := invoice.Invoice{
		ID:           uuid.New(),
		Number:       invoice.NextNumber(s.invoices, s.now().Year()),
		CustomerName: params.CustomerName,
		Date:         params.Date,
		Amount:       params.Amount,
		Status:       status,
	}

	s.invoices = append(s.invoices, inv)
	s.refilter()
	s.mu.Unlock()

	s.notify(Event{Kind: EventInvoiceAdded, Invoice: &inv})

	return inv, nil
}

// UpdatePatch is a partial invoice update. Nil fields are left untouched.
type UpdatePatch struct {
	CustomerName *string
	Date         *time.Time
	Amount       *decimal.Decimal
	Status       *invoice.Status
}

// Update merges the patch into the record with the given id and emits
// invoice-updated. A paid invoice never transitions back to pending. An
// open detail view on the same id is refreshed in place.
func (s *Store) Update(id uuid.UUID, patch UpdatePatch) (invoice.Invoice, error) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	inv := s.invoices[idx]
	update := UpdateGeneric

	if patch.CustomerName != nil {
		if *patch.CustomerName == "" {
			s.mu.Unlock()
			return invoice.Invoice{}, invoice.ErrInvalidCustomer
		}

		inv.CustomerName = *patch.CustomerName
	}

	if patch.Date != nil {
		inv.Date = *patch.Date
	}

	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			s.mu.Unlock()
			return invoice.Invoice{}, invoice.ErrInvalidAmount
		}

		inv.Amount = *patch.Amount
	}

	if patch.Status != nil && *patch.Status != inv.Status {
		if inv.Status == invoice.StatusPaid {
			s.mu.Unlock()
			return invoice.Invoice{}, invoice.ErrAlreadyPaid
		}

		if *patch.Status != invoice.StatusPaid && *patch.Status != invoice.StatusPending {
			s.mu.Unlock()
			return invoice.Invoice{}, invoice.ErrInvalidStatus
		}

		if *patch.Status == invoice.StatusPaid {
			update = UpdatePayment
		}

		inv.Status = *patch.Status
	}

	s.invoices[idx] = inv
	s.refreshDetail(inv)
	s.refilter()
	s.mu.Unlock()

	s.notify(Event{Kind: EventInvoiceUpdated, Update: update, Invoice: &inv})

	return inv, nil
}

// MarkPaid performs the one-way pending-to-paid transition. Marking an
// already paid invoice is a no-op and emits nothing.
func (s *Store) MarkPaid(id uuid.UUID) (invoice.Invoice, error) {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	inv := s.invoices[idx]
	if inv.Status == invoice.StatusPaid {
		s.mu.Unlock()
		return inv, nil
	}

	inv.Status = invoice.StatusPaid
	s.invoices[idx] = inv
	s.refreshDetail(inv)
	s.refilter()
	s.mu.Unlock()

	s.notify(Event{Kind: EventInvoiceUpdated, Update: UpdatePayment, Invoice: &inv})

	return inv, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return invoice.ErrNotFound
	}

	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)

	if s.detail != nil && s.detail.ID == id {
		s.detail = nil
	}

	s.refilter()

	return nil
}

// ImportCSV classifies the rows against the current canonical collection,
// merges the imported bucket as a single update and emits
// csv-import-completed with the full result. Duplicate and error rows are
// reported, never fatal.
func (s *Store) ImportCSV(rows []importer.RawRow) importer.BatchResult {
	s.mu.Lock()

	result := importer.ClassifyBatch(rows, s.invoices)
	s.invoices = append(s.invoices, result.Imported...)
	s.refilter()
	s.mu.Unlock()

	s.notify(Event{Kind: EventImportComplete, Import: &result})

	return result
}

// OpenDetail marks the record under detailed inspection. UI-routing
// state only, no business rule.
func (s *Store) OpenDetail(id uuid.UUID) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	inv := s.invoices[idx]
	s.detail = &inv

	return inv, nil
}

// CloseDetail clears the detail selection.
func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detail = nil
}

// Detail returns the record under inspection, if any.
func (s *Store) Detail() (invoice.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail == nil {
		return invoice.Invoice{}, false
	}

	return *s.detail, true
}

// refilter recomputes the derived view. Callers hold the lock.
func (s *Store) refilter() {
	s.filtered = invoice.Apply(s.invoices, s.filters)
}

// refreshDetail keeps an open detail view consistent after an update.
// Callers hold the lock.
func (s *Store) refreshDetail(inv invoice.Invoice) {
	if s.detail != nil && s.detail.ID == inv.ID {
		s.detail = &inv
	}
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, inv := range s.invoices {
		if inv.ID == id {
			return i
		}
	}

	return -1
}

func copyInvoices(invoices []invoice.Invoice) []invoice.Invoice {
	out := make([]invoice.Invoice, len(invoices))
	copy(out, invoices)

	return out
}
