package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/arunasjusas/invoicing/internal/entity"
)

const invoiceColumns = `id, number, date, client_id, client, amount, status, due_date, paid_amount,
		attachment_name, attachment_url, notes, deleted, deleted_at, created_at, updated_at`

// Invoices returns every row of the invoices table, newest first. The whole
// table is fetched every time; the record store replaces its snapshot
// wholesale.
func (r *Repository) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	sqlQuery := `SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var invoices []entity.Invoice

	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

func (r *Repository) InvoiceByID(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	sqlQuery := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1`

	invoice, err := scanInvoice(r.db.QueryRow(ctx, sqlQuery, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return invoice, nil
}

func (r *Repository) CreateInvoice(ctx context.Context, invoice entity.Invoice) error {
	sqlQuery :=
		`INSERT INTO invoices
			(id, number, date, client_id, client, amount, status, due_date, paid_amount,
			attachment_name, attachment_url, notes, deleted, deleted_at, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, sqlQuery,
		invoice.ID.String(),
		invoice.Number,
		invoice.Date,
		nullableUUID(invoice.ClientID),
		invoice.ClientName,
		invoice.Amount.String(),
		invoice.Status,
		invoice.DueDate,
		invoice.PaidAmount.String(),
		invoice.AttachmentName,
		invoice.AttachmentURL,
		invoice.Notes,
		invoice.Deleted,
		invoice.DeletedAt,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

// UpdateInvoice applies only the fields set on the patch, plus an updated_at
// refresh. A patch matching no row surfaces entity.ErrNotFound instead of
// succeeding silently.
func (r *Repository) UpdateInvoice(ctx context.Context, id uuid.UUID, patch entity.InvoicePatch) error {
	stmt := sq.Update("invoices").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id.String()}).
		PlaceholderFormat(sq.Dollar)

	stmt = applyInvoicePatch(stmt, patch)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func applyInvoicePatch(stmt sq.UpdateBuilder, patch entity.InvoicePatch) sq.UpdateBuilder {
	if patch.Number != nil {
		stmt = stmt.Set("number", *patch.Number)
	}

	if patch.Date != nil {
		stmt = stmt.Set("date", *patch.Date)
	}

	if patch.DueDate != nil {
		stmt = stmt.Set("due_date", *patch.DueDate)
	}

	if patch.ClientID != nil {
		stmt = stmt.Set("client_id", nullableUUID(*patch.ClientID))
	}

	if patch.ClientName != nil {
		stmt = stmt.Set("client", *patch.ClientName)
	}

	if patch.Amount != nil {
		stmt = stmt.Set("amount", patch.Amount.String())
	}

	if patch.Status != nil {
		stmt = stmt.Set("status", *patch.Status)
	}

	if patch.PaidAmount != nil {
		stmt = stmt.Set("paid_amount", patch.PaidAmount.String())
	}

	if patch.AttachmentName != nil {
		stmt = stmt.Set("attachment_name", *patch.AttachmentName)
	}

	if patch.AttachmentURL != nil {
		stmt = stmt.Set("attachment_url", *patch.AttachmentURL)
	}

	if patch.Notes != nil {
		stmt = stmt.Set("notes", *patch.Notes)
	}

	return stmt
}

// SoftDeleteInvoice keeps the row and flags it deleted.
func (r *Repository) SoftDeleteInvoice(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	sqlQuery := `
		UPDATE invoices
		SET deleted = true, deleted_at = $1, updated_at = $1
		WHERE id = $2`

	tag, err := r.db.Exec(ctx, sqlQuery, deletedAt, id.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) RestoreInvoice(ctx context.Context, id uuid.UUID, restoredAt time.Time) error {
	sqlQuery := `
		UPDATE invoices
		SET deleted = false, deleted_at = NULL, updated_at = $1
		WHERE id = $2`

	tag, err := r.db.Exec(ctx, sqlQuery, restoredAt, id.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// DeleteInvoice removes the row for good.
func (r *Repository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	sqlQuery := `DELETE FROM invoices WHERE id = $1`

	tag, err := r.db.Exec(ctx, sqlQuery, id.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

type invoiceRow interface {
	Scan(dest ...any) error
}

func scanInvoice(row invoiceRow) (entity.Invoice, error) {
	var (
		invoice  entity.Invoice
		id       string
		clientID *string
	)

	err := row.Scan(
		&id,
		&invoice.Number,
		&invoice.Date,
		&clientID,
		&invoice.ClientName,
		&invoice.Amount,
		&invoice.Status,
		&invoice.DueDate,
		&invoice.PaidAmount,
		&invoice.AttachmentName,
		&invoice.AttachmentURL,
		&invoice.Notes,
		&invoice.Deleted,
		&invoice.DeletedAt,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return entity.Invoice{}, err
	}

	invoice.ID, err = uuid.FromString(id)
	if err != nil {
		return entity.Invoice{}, err
	}

	if clientID != nil {
		invoice.ClientID, err = uuid.FromString(*clientID)
		if err != nil {
			return entity.Invoice{}, err
		}
	}

	return invoice, nil
}

func nullableUUID(id uuid.UUID) *string {
	if id.IsNil() {
		return nil
	}

	s := id.String()

	return &s
}
