package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/arunasjusas/invoicing/internal/entity"
)

// defaultNumberPrefix seeds numbering for an empty table.
const defaultNumberPrefix = "SF-"

type InvoiceStore struct {
	*Store[entity.Invoice]
}

func NewInvoiceStore(fetch FetchFunc[entity.Invoice]) *InvoiceStore {
	return &InvoiceStore{
		Store: New(fetch),
	}
}

// ByID looks the invoice up in the current snapshot. The result may be stale
// relative to the remote table.
func (s *InvoiceStore) ByID(id uuid.UUID) (entity.Invoice, error) {
	for _, invoice := range s.Items() {
		if invoice.ID == id {
			return invoice, nil
		}
	}

	return entity.Invoice{}, entity.ErrNotFound
}

// Active returns the non-deleted partition of the snapshot.
func (s *InvoiceStore) Active() []entity.Invoice {
	return s.filter(false)
}

// Deleted returns the soft-deleted partition of the snapshot. Active and
// Deleted are disjoint and together cover the whole snapshot.
func (s *InvoiceStore) Deleted() []entity.Invoice {
	return s.filter(true)
}

func (s *InvoiceStore) filter(deleted bool) []entity.Invoice {
	var out []entity.Invoice

	for _, invoice := range s.Items() {
		if invoice.Deleted == deleted {
			out = append(out, invoice)
		}
	}

	return out
}

// HasNumber reports whether an active invoice already carries the number,
// compared case-insensitively.
func (s *InvoiceStore) HasNumber(number string) bool {
	for _, invoice := range s.Active() {
		if strings.EqualFold(invoice.Number, number) {
			return true
		}
	}

	return false
}

// NextNumber derives the next display number from the highest numeric suffix
// present in the snapshot, keeping that invoice's prefix.
func (s *InvoiceStore) NextNumber() string {
	var (
		maxSuffix int
		prefix    = defaultNumberPrefix
		found     bool
	)

	for _, invoice := range s.Items() {
		p, n, ok := splitNumber(invoice.Number)
		if !ok {
			continue
		}

		if !found || n > maxSuffix {
			maxSuffix = n
			prefix = p
			found = true
		}
	}

	if !found {
		return defaultNumberPrefix + "101"
	}

	return fmt.Sprintf("%s%d", prefix, maxSuffix+1)
}

func splitNumber(number string) (prefix string, suffix int, ok bool) {
	i := len(number)
	for i > 0 && number[i-1] >= '0' && number[i-1] <= '9' {
		i--
	}

	if i == len(number) {
		return "", 0, false
	}

	n, err := strconv.Atoi(number[i:])
	if err != nil {
		return "", 0, false
	}

	return number[:i], n, true
}
