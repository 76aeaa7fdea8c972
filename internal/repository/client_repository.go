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

const clientColumns = `id, name, email, phone, address, tax_id, notes, created_at, updated_at`

func (r *Repository) Clients(ctx context.Context) ([]entity.Client, error) {
	sqlQuery := `SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var clients []entity.Client

	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (r *Repository) ClientByID(ctx context.Context, id uuid.UUID) (entity.Client, error) {
	sqlQuery := `SELECT ` + clientColumns + `
		FROM clients
		WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(ctx, sqlQuery, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Client{}, entity.ErrNotFound
		}

		return entity.Client{}, err
	}

	return client, nil
}

func (r *Repository) CreateClient(ctx context.Context, client entity.Client) error {
	sqlQuery :=
		`INSERT INTO clients
			(id, name, email, phone, address, tax_id, notes, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, sqlQuery,
		client.ID.String(),
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.TaxID,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateClient(ctx context.Context, id uuid.UUID, patch entity.ClientPatch) error {
	stmt := sq.Update("clients").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id.String()}).
		PlaceholderFormat(sq.Dollar)

	stmt = applyClientPatch(stmt, patch)

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

func applyClientPatch(stmt sq.UpdateBuilder, patch entity.ClientPatch) sq.UpdateBuilder {
	if patch.Name != nil {
		stmt = stmt.Set("name", *patch.Name)
	}

	if patch.Email != nil {
		stmt = stmt.Set("email", *patch.Email)
	}

	if patch.Phone != nil {
		stmt = stmt.Set("phone", *patch.Phone)
	}

	if patch.Address != nil {
		stmt = stmt.Set("address", *patch.Address)
	}

	if patch.TaxID != nil {
		stmt = stmt.Set("tax_id", *patch.TaxID)
	}

	if patch.Notes != nil {
		stmt = stmt.Set("notes", *patch.Notes)
	}

	return stmt
}

// DeleteClient removes the row. Clients have no soft delete.
func (r *Repository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	sqlQuery := `DELETE FROM clients WHERE id = $1`

	tag, err := r.db.Exec(ctx, sqlQuery, id.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

type clientRow interface {
	Scan(dest ...any) error
}

func scanClient(row clientRow) (entity.Client, error) {
	var (
		client entity.Client
		id     string
	)

	err := row.Scan(
		&id,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.TaxID,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return entity.Client{}, err
	}

	client.ID, err = uuid.FromString(id)
	if err != nil {
		return entity.Client{}, err
	}

	return client, nil
}
