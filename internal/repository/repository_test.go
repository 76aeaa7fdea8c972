package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/repository"
	"github.com/arunasjusas/invoicing/pkg/postgres"
)

func newRepository(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	pool, err := postgres.Connect(context.Background(), dsn, 10)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	err = postgres.UpMigrations(dsn)
	require.NoError(t, err)

	return repository.New(pool)
}

func testInvoice() entity.Invoice {
	now := time.Now().Truncate(time.Millisecond)

	return entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     uuid.Must(uuid.NewV4()).String(),
		Date:       now.AddDate(0, 0, -14),
		DueDate:    now,
		ClientName: "UAB Statyba",
		Amount:     decimal.New(15_000, -2),
		Status:     entity.StatusUnpaid,
		PaidAmount: decimal.Zero,
		Notes:      "test invoice",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRepository_CreateInvoice(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	invoice := testInvoice()

	err := repo.CreateInvoice(context.Background(), invoice)
	require.NoError(t, err)

	got, err := repo.InvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)

	require.Equal(t, invoice.ID, got.ID)
	require.Equal(t, invoice.Number, got.Number)
	require.True(t, invoice.Amount.Equal(got.Amount))
	require.Equal(t, invoice.Status, got.Status)
	require.False(t, got.Deleted)
	require.Nil(t, got.DeletedAt)
}

func TestRepository_InvoiceByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	_, err := repo.InvoiceByID(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_UpdateInvoice(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	invoice := testInvoice()

	err := repo.CreateInvoice(context.Background(), invoice)
	require.NoError(t, err)

	status := entity.StatusPaid
	paid := decimal.New(15_000, -2)

	err = repo.UpdateInvoice(context.Background(), invoice.ID, entity.InvoicePatch{
		Status:     &status,
		PaidAmount: &paid,
	})
	require.NoError(t, err)

	got, err := repo.InvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)

	require.Equal(t, entity.StatusPaid, got.Status)
	require.True(t, paid.Equal(got.PaidAmount))

	// untouched fields survive the patch
	require.Equal(t, invoice.Number, got.Number)
	require.Equal(t, invoice.ClientName, got.ClientName)
}

func TestRepository_UpdateInvoice_NotFound(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	status := entity.StatusPaid

	err := repo.UpdateInvoice(context.Background(), uuid.Must(uuid.NewV4()), entity.InvoicePatch{Status: &status})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_SoftDeleteAndRestore(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	invoice := testInvoice()

	err := repo.CreateInvoice(context.Background(), invoice)
	require.NoError(t, err)

	deletedAt := time.Now().Truncate(time.Millisecond)

	err = repo.SoftDeleteInvoice(context.Background(), invoice.ID, deletedAt)
	require.NoError(t, err)

	got, err := repo.InvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted)
	require.NotNil(t, got.DeletedAt)

	err = repo.RestoreInvoice(context.Background(), invoice.ID, time.Now())
	require.NoError(t, err)

	got, err = repo.InvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.False(t, got.Deleted)
	require.Nil(t, got.DeletedAt)
}

func TestRepository_DeleteInvoice(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	invoice := testInvoice()

	err := repo.CreateInvoice(context.Background(), invoice)
	require.NoError(t, err)

	err = repo.DeleteInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)

	_, err = repo.InvoiceByID(context.Background(), invoice.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)

	err = repo.DeleteInvoice(context.Background(), invoice.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_Clients(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	client := entity.Client{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      uuid.Must(uuid.NewV4()).String(),
		Email:     "info@statyba.lt",
		Phone:     "+37060000000",
		Address:   "Vilnius",
		TaxID:     "LT100001",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.CreateClient(context.Background(), client)
	require.NoError(t, err)

	got, err := repo.ClientByID(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, client.Name, got.Name)
	require.Equal(t, client.Email, got.Email)

	name := uuid.Must(uuid.NewV4()).String()

	err = repo.UpdateClient(context.Background(), client.ID, entity.ClientPatch{Name: &name})
	require.NoError(t, err)

	got, err = repo.ClientByID(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, name, got.Name)

	err = repo.DeleteClient(context.Background(), client.ID)
	require.NoError(t, err)

	_, err = repo.ClientByID(context.Background(), client.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}
