package store_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/store"
)

func invoiceStore(t *testing.T, invoices []entity.Invoice) *store.InvoiceStore {
	t.Helper()

	s := store.NewInvoiceStore(func(_ context.Context) ([]entity.Invoice, error) {
		return invoices, nil
	})

	err := s.Refresh(context.Background())
	require.NoError(t, err)

	return s
}

func TestInvoiceStore_Partitions(t *testing.T) {
	t.Parallel()

	invoices := []entity.Invoice{
		{ID: uuid.Must(uuid.NewV4()), Number: "SF-101"},
		{ID: uuid.Must(uuid.NewV4()), Number: "SF-102", Deleted: true},
		{ID: uuid.Must(uuid.NewV4()), Number: "SF-103"},
	}

	s := invoiceStore(t, invoices)

	active := s.Active()
	deleted := s.Deleted()

	require.Len(t, active, 2)
	require.Len(t, deleted, 1)
	require.Equal(t, "SF-102", deleted[0].Number)

	for _, invoice := range active {
		require.False(t, invoice.Deleted)
	}
}

func TestInvoiceStore_ByID(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	s := invoiceStore(t, []entity.Invoice{{ID: id, Number: "SF-101"}})

	invoice, err := s.ByID(id)
	require.NoError(t, err)
	require.Equal(t, "SF-101", invoice.Number)

	_, err = s.ByID(uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestInvoiceStore_HasNumber(t *testing.T) {
	t.Parallel()

	s := invoiceStore(t, []entity.Invoice{
		{ID: uuid.Must(uuid.NewV4()), Number: "SF-101"},
		{ID: uuid.Must(uuid.NewV4()), Number: "SF-200", Deleted: true},
	})

	require.True(t, s.HasNumber("SF-101"))
	require.True(t, s.HasNumber("sf-101"))
	require.False(t, s.HasNumber("SF-102"))

	// numbers in the recycle bin do not block reuse
	require.False(t, s.HasNumber("SF-200"))
}

func TestInvoiceStore_NextNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{name: "empty snapshot", numbers: nil, want: "SF-101"},
		{name: "increments highest suffix", numbers: []string{"SF-104", "SF-102"}, want: "SF-105"},
		{name: "keeps custom prefix", numbers: []string{"INV2024-7"}, want: "INV2024-8"},
		{name: "ignores numbers without suffix", numbers: []string{"DRAFT", "SF-101"}, want: "SF-102"},
		{name: "no parsable numbers", numbers: []string{"DRAFT"}, want: "SF-101"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			invoices := make([]entity.Invoice, 0, len(tt.numbers))
			for _, n := range tt.numbers {
				invoices = append(invoices, entity.Invoice{ID: uuid.Must(uuid.NewV4()), Number: n})
			}

			s := invoiceStore(t, invoices)
			require.Equal(t, tt.want, s.NextNumber())
		})
	}
}
