package pdf_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/pdf"
)

func TestRenderInvoice(t *testing.T) {
	t.Parallel()

	invoice := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     "SF-101",
		Date:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		ClientName: "UAB Žalčių statyba",
		Amount:     decimal.RequireFromString("121.00"),
		Status:     entity.StatusUnpaid,
		PaidAmount: decimal.RequireFromString("21.00"),
		Notes:      "Pirmoji sąskaita",
	}

	doc, err := pdf.RenderInvoice(invoice)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	require.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderInvoice_NoPartialPayment(t *testing.T) {
	t.Parallel()

	invoice := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     "SF-102",
		Date:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		ClientName: "MB Medis",
		Amount:     decimal.RequireFromString("60.50"),
		Status:     entity.StatusPaid,
	}

	doc, err := pdf.RenderInvoice(invoice)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
}
