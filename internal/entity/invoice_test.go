package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/entity"
)

func TestInvoiceStatus_IsValid(t *testing.T) {
	t.Parallel()

	require.True(t, entity.StatusPaid.IsValid())
	require.True(t, entity.StatusUnpaid.IsValid())
	require.True(t, entity.StatusPending.IsValid())
	require.False(t, entity.InvoiceStatus("DRAFT").IsValid())
	require.False(t, entity.InvoiceStatus("paid").IsValid())
}

func TestInvoice_Remaining(t *testing.T) {
	t.Parallel()

	invoice := entity.Invoice{
		Amount:     decimal.RequireFromString("150.00"),
		PaidAmount: decimal.RequireFromString("40.50"),
	}

	require.True(t, invoice.Remaining().Equal(decimal.RequireFromString("109.50")))
}

func TestInvoice_Predicates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	unpaidOverdue := entity.Invoice{Status: entity.StatusUnpaid, DueDate: past}
	require.True(t, unpaidOverdue.IsUnpaid())
	require.True(t, unpaidOverdue.IsOverdue(now))

	unpaidCurrent := entity.Invoice{Status: entity.StatusUnpaid, DueDate: future}
	require.True(t, unpaidCurrent.IsUnpaid())
	require.False(t, unpaidCurrent.IsOverdue(now))

	// pending past its due date is neither unpaid nor overdue
	pendingPast := entity.Invoice{Status: entity.StatusPending, DueDate: past}
	require.False(t, pendingPast.IsUnpaid())
	require.False(t, pendingPast.IsOverdue(now))
}

func TestInvoicePatch_IsZero(t *testing.T) {
	t.Parallel()

	require.True(t, entity.InvoicePatch{}.IsZero())

	number := "SF-101"
	require.False(t, entity.InvoicePatch{Number: &number}.IsZero())
}
