package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/arunasjusas/invoicing/internal/entity"
)

// Invoice rows: number,date,client,amount,status,dueDate,notes
// Client rows:  name,email,phone,address,taxId
const (
	invoiceCSVColumns         = 6
	invoiceCSVRequiredColumns = 6
	clientCSVColumns          = 5
)

var csvDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ImportReport struct {
	TotalRows int      `json:"totalRows"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// ImportInvoicesCSV reads the whole file, validates row by row and imports
// every valid row even when others fail. Malformed rows are reported with
// their line number; rows whose number already belongs to an active invoice
// (case-insensitive) are skipped, not failed. The snapshot is refetched once
// at the end.
func (s *Service) ImportInvoicesCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	rows, err := readCSV(r)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{TotalRows: len(rows)}

	seen := make(map[string]bool)

	for i, row := range rows {
		line := i + 2 // 1-based, after the header row

		params, parseErr := parseInvoiceRow(row)
		if parseErr != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", line, parseErr))

			continue
		}

		number := strings.ToLower(params.Number)
		if seen[number] || s.invoices.HasNumber(params.Number) {
			report.Skipped++
			continue
		}

		invoice, createErr := s.importInvoice(ctx, params)
		if createErr != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", line, createErr))

			continue
		}

		seen[number] = true
		report.Imported++

		s.producer.SendRowChanged(ctx, s.topics.InvoicesChanged, "insert", invoice.ID)
	}

	if report.Imported > 0 {
		s.finishInvoiceImport(ctx)
	}

	slog.InfoContext(ctx, "invoice csv import finished",
		"imported", report.Imported, "skipped", report.Skipped, "failed", report.Failed)

	return report, nil
}

func (s *Service) importInvoice(ctx context.Context, p CreateInvoiceParams) (entity.Invoice, error) {
	if client, err := s.clients.ByName(p.ClientName); err == nil {
		p.ClientID = client.ID
	}

	now := time.Now()

	invoice := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     p.Number,
		Date:       p.Date,
		DueDate:    p.DueDate,
		ClientID:   p.ClientID,
		ClientName: p.ClientName,
		Amount:     p.Amount,
		Status:     p.Status,
		PaidAmount: decimal.Zero,
		Notes:      p.Notes,
		Deleted:    false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return entity.Invoice{}, err
	}

	return invoice, nil
}

func (s *Service) finishInvoiceImport(ctx context.Context) {
	err := s.msgCache.Invalidate(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "invalidate message cache", "error", err)
	}

	err = s.invoices.Refresh(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "refresh invoices", "error", err)
	}
}

func parseInvoiceRow(row []string) (CreateInvoiceParams, error) {
	if len(row) < invoiceCSVRequiredColumns {
		return CreateInvoiceParams{}, fmt.Errorf("expected at least %d columns, got %d", invoiceCSVRequiredColumns, len(row))
	}

	number := strings.TrimSpace(row[0])
	if number == "" {
		return CreateInvoiceParams{}, errors.New("missing invoice number")
	}

	date, err := parseCSVDate(row[1], "date")
	if err != nil {
		return CreateInvoiceParams{}, err
	}

	client := strings.TrimSpace(row[2])
	if client == "" {
		return CreateInvoiceParams{}, errors.New("missing client")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row[3]))
	if err != nil || !amount.IsPositive() {
		return CreateInvoiceParams{}, fmt.Errorf("invalid amount %q", row[3])
	}

	status := entity.InvoiceStatus(strings.ToUpper(strings.TrimSpace(row[4])))
	if !status.IsValid() {
		return CreateInvoiceParams{}, fmt.Errorf("invalid status %q", row[4])
	}

	dueDate, err := parseCSVDate(row[5], "dueDate")
	if err != nil {
		return CreateInvoiceParams{}, err
	}

	if dueDate.Before(date) {
		return CreateInvoiceParams{}, errors.New("dueDate before date")
	}

	var notes string
	if len(row) > invoiceCSVColumns {
		notes = strings.TrimSpace(strings.Join(row[invoiceCSVColumns:], ","))
	}

	return CreateInvoiceParams{
		Number:     number,
		Date:       date,
		DueDate:    dueDate,
		ClientName: client,
		Amount:     amount,
		Status:     status,
		Notes:      notes,
	}, nil
}

// ImportClientsCSV imports client rows; only the name column is required.
func (s *Service) ImportClientsCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	rows, err := readCSV(r)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{TotalRows: len(rows)}

	for i, row := range rows {
		line := i + 2

		client, parseErr := parseClientRow(row)
		if parseErr != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", line, parseErr))

			continue
		}

		if _, lookupErr := s.clients.ByName(client.Name); lookupErr == nil {
			report.Skipped++
			continue
		}

		createErr := s.repo.CreateClient(ctx, client)
		if createErr != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", line, createErr))

			continue
		}

		report.Imported++

		s.producer.SendRowChanged(ctx, s.topics.ClientsChanged, "insert", client.ID)
	}

	if report.Imported > 0 {
		err = s.clients.Refresh(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "refresh clients", "error", err)
		}
	}

	slog.InfoContext(ctx, "client csv import finished",
		"imported", report.Imported, "skipped", report.Skipped, "failed", report.Failed)

	return report, nil
}

func parseClientRow(row []string) (entity.Client, error) {
	if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
		return entity.Client{}, errors.New("missing name")
	}

	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}

		return ""
	}

	now := time.Now()

	return entity.Client{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      get(0),
		Email:     get(1),
		Phone:     get(2),
		Address:   get(3),
		TaxID:     get(4),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// readCSV returns the data rows, header excluded. Ragged rows are passed
// through so row-level validation can report them with their line number.
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", entity.ErrValidation)
	}

	return rows[1:], nil
}

func parseCSVDate(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if !csvDatePattern.MatchString(raw) {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", field, raw)
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q", field, raw)
	}

	return t, nil
}
