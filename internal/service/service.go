package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/arunasjusas/invoicing/internal/analytics"
	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/pdf"
	"github.com/arunasjusas/invoicing/internal/store"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	Invoices(ctx context.Context) ([]entity.Invoice, error)
	CreateInvoice(ctx context.Context, invoice entity.Invoice) error
	UpdateInvoice(ctx context.Context, id uuid.UUID, patch entity.InvoicePatch) error
	SoftDeleteInvoice(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
	RestoreInvoice(ctx context.Context, id uuid.UUID, restoredAt time.Time) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	Clients(ctx context.Context) ([]entity.Client, error)
	CreateClient(ctx context.Context, client entity.Client) error
	UpdateClient(ctx context.Context, id uuid.UUID, patch entity.ClientPatch) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Producer interface {
	SendRowChanged(ctx context.Context, topic, op string, rowID uuid.UUID)
}

type Mailer interface {
	SendReminder(recipient, subject, body string) error
}

type MessageCache interface {
	Get(ctx context.Context) ([]entity.Message, bool, error)
	Set(ctx context.Context, messages []entity.Message) error
	Invalidate(ctx context.Context) error
}

type Topics struct {
	InvoicesChanged string
	ClientsChanged  string
}

type Service struct {
	repo     Repository
	producer Producer
	mailer   Mailer
	msgCache MessageCache
	topics   Topics
	invoices *store.InvoiceStore
	clients  *store.ClientStore
}

func New(
	repo Repository,
	producer Producer,
	mailer Mailer,
	msgCache MessageCache,
	topics Topics,
) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
		mailer:   mailer,
		msgCache: msgCache,
		topics:   topics,
		invoices: store.NewInvoiceStore(repo.Invoices),
		clients:  store.NewClientStore(repo.Clients),
	}
}

// RefreshInvoices resynchronizes the invoice snapshot with the remote table.
// Called after every local write and on every change-feed signal.
func (s *Service) RefreshInvoices(ctx context.Context) error {
	return s.invoices.Refresh(ctx)
}

func (s *Service) RefreshClients(ctx context.Context) error {
	return s.clients.Refresh(ctx)
}

// ActiveInvoices returns the non-deleted partition of the current snapshot.
func (s *Service) ActiveInvoices() []entity.Invoice {
	return s.invoices.Active()
}

// DeletedInvoices returns the recycle-bin partition.
func (s *Service) DeletedInvoices() []entity.Invoice {
	return s.invoices.Deleted()
}

func (s *Service) InvoiceByID(id uuid.UUID) (entity.Invoice, error) {
	return s.invoices.ByID(id)
}

func (s *Service) Clients() []entity.Client {
	return s.clients.Items()
}

func (s *Service) ClientByID(id uuid.UUID) (entity.Client, error) {
	return s.clients.ByID(id)
}

type CreateInvoiceParams struct {
	Number         string
	Date           time.Time
	DueDate        time.Time
	ClientID       uuid.UUID
	ClientName     string
	Amount         decimal.Decimal
	Status         entity.InvoiceStatus
	PaidAmount     decimal.Decimal
	AttachmentName string
	AttachmentURL  string
	Notes          string
}

// CreateInvoice validates, writes the full row, signals the change feed and
// refetches. The caller sees the new record only after the refetch; there is
// no optimistic local insert.
func (s *Service) CreateInvoice(ctx context.Context, p CreateInvoiceParams) (entity.Invoice, error) {
	err := ValidateCreateInvoiceParams(p)
	if err != nil {
		return entity.Invoice{}, err
	}

	number := p.Number
	if number == "" {
		number = s.invoices.NextNumber()
	}

	if s.invoices.HasNumber(number) {
		return entity.Invoice{}, fmt.Errorf("%w: invoice number %s", entity.ErrAlreadyExists, number)
	}

	clientName := p.ClientName
	if !p.ClientID.IsNil() {
		clientName = s.clients.NameByID(p.ClientID)
	}

	now := time.Now()

	invoice := entity.Invoice{
		ID:             uuid.Must(uuid.NewV4()),
		Number:         number,
		Date:           p.Date,
		DueDate:        p.DueDate,
		ClientID:       p.ClientID,
		ClientName:     clientName,
		Amount:         p.Amount,
		Status:         p.Status,
		PaidAmount:     p.PaidAmount,
		AttachmentName: p.AttachmentName,
		AttachmentURL:  p.AttachmentURL,
		Notes:          p.Notes,
		Deleted:        false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	s.afterInvoiceWrite(ctx, "insert", invoice.ID)

	slog.InfoContext(ctx, "invoice created", "invoice_id", invoice.ID, "number", invoice.Number)

	return invoice, nil
}

func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, patch entity.InvoicePatch) error {
	err := ValidateInvoicePatch(patch)
	if err != nil {
		return err
	}

	if current, lookupErr := s.invoices.ByID(id); lookupErr == nil {
		err = validatePatchDates(current, patch)
		if err != nil {
			return err
		}
	}

	if patch.ClientID != nil && !patch.ClientID.IsNil() {
		name := s.clients.NameByID(*patch.ClientID)
		patch.ClientName = &name
	}

	err = s.repo.UpdateInvoice(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	s.afterInvoiceWrite(ctx, "update", id)

	return nil
}

// DeleteInvoice soft-deletes: the row is flagged and kept for the recycle
// bin.
func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	err := s.repo.SoftDeleteInvoice(ctx, id, time.Now())
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}

	s.afterInvoiceWrite(ctx, "update", id)

	return nil
}

func (s *Service) RestoreInvoice(ctx context.Context, id uuid.UUID) error {
	err := s.repo.RestoreInvoice(ctx, id, time.Now())
	if err != nil {
		return fmt.Errorf("restore invoice: %w", err)
	}

	s.afterInvoiceWrite(ctx, "update", id)

	return nil
}

func (s *Service) PermanentlyDeleteInvoice(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	s.afterInvoiceWrite(ctx, "delete", id)

	return nil
}

// InvoicePDF renders the invoice from the current snapshot.
func (s *Service) InvoicePDF(id uuid.UUID) (string, []byte, error) {
	invoice, err := s.invoices.ByID(id)
	if err != nil {
		return "", nil, err
	}

	doc, err := pdf.RenderInvoice(invoice)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("invoice-%s.pdf", invoice.Number), doc, nil
}

type CreateClientParams struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
	Notes   string
}

func (s *Service) CreateClient(ctx context.Context, p CreateClientParams) (entity.Client, error) {
	err := ValidateCreateClientParams(p)
	if err != nil {
		return entity.Client{}, err
	}

	now := time.Now()

	client := entity.Client{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		TaxID:     p.TaxID,
		Notes:     p.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.CreateClient(ctx, client)
	if err != nil {
		return entity.Client{}, fmt.Errorf("create client: %w", err)
	}

	s.afterClientWrite(ctx, "insert", client.ID)

	slog.InfoContext(ctx, "client created", "client_id", client.ID, "name", client.Name)

	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, patch entity.ClientPatch) error {
	err := ValidateClientPatch(patch)
	if err != nil {
		return err
	}

	err = s.repo.UpdateClient(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	s.afterClientWrite(ctx, "update", id)

	return nil
}

// DeleteClient removes the row physically. Invoices referencing the client
// keep their denormalized name and resolve to "Unknown client" afterwards.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	s.afterClientWrite(ctx, "delete", id)

	return nil
}

// Messages returns the reminder sequence, regenerating from the current
// snapshot when the cache is empty. The cache is invalidated on every
// invoice mutation, so a read after a write always reflects the new
// snapshot.
func (s *Service) Messages(ctx context.Context) ([]entity.Message, error) {
	cached, ok, err := s.msgCache.Get(ctx)
	if err != nil {
		return nil, err
	}

	if ok {
		return cached, nil
	}

	messages := analytics.SynthesizeMessages(s.invoices.Active(), time.Now())

	err = s.msgCache.Set(ctx, messages)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

type DashboardKPI struct {
	analytics.KPI
	SentReminders int
}

func (s *Service) KPI(ctx context.Context) (DashboardKPI, error) {
	messages, err := s.Messages(ctx)
	if err != nil {
		return DashboardKPI{}, err
	}

	return DashboardKPI{
		KPI:           analytics.ComputeKPI(s.invoices.Active(), time.Now()),
		SentReminders: len(messages),
	}, nil
}

func (s *Service) Chart() []analytics.MonthBucket {
	return analytics.MonthlyBuckets(s.invoices.Active(), time.Now())
}

func (s *Service) Rates(ctx context.Context) (analytics.Rates, error) {
	messages, err := s.Messages(ctx)
	if err != nil {
		return analytics.Rates{}, err
	}

	return analytics.ComputeRates(messages), nil
}

func (s *Service) SendingActivity(ctx context.Context) ([]analytics.ActivityBucket, error) {
	messages, err := s.Messages(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.SendingActivity(messages, time.Now()), nil
}

type ReminderReport struct {
	Sent         int `json:"sent"`
	NotDelivered int `json:"notDelivered"`
}

// SendReminders synthesizes the current sequence and dispatches each message
// through the mailer (a mock by default). A message whose invoice no longer
// resolves to a client with an email address is counted as not delivered.
func (s *Service) SendReminders(ctx context.Context) (ReminderReport, error) {
	messages := analytics.SynthesizeMessages(s.invoices.Active(), time.Now())

	var report ReminderReport

	for i, m := range messages {
		email, ok := s.reminderRecipient(m)
		if !ok {
			messages[i].Status = entity.MessageNotDelivered
			report.NotDelivered++

			continue
		}

		subject := fmt.Sprintf("Payment reminder (%s)", m.Step)
		body := fmt.Sprintf("Dear %s, invoice payment is overdue. This is reminder %s.", m.Client, m.Step)

		err := s.mailer.SendReminder(email, subject, body)
		if err != nil {
			slog.ErrorContext(ctx, "send reminder", "message_id", m.ID, "error", err)

			messages[i].Status = entity.MessageNotDelivered
			report.NotDelivered++

			continue
		}

		report.Sent++
	}

	err := s.msgCache.Set(ctx, messages)
	if err != nil {
		return ReminderReport{}, err
	}

	return report, nil
}

func (s *Service) reminderRecipient(m entity.Message) (string, bool) {
	invoice, err := s.invoices.ByID(m.InvoiceID)
	if err != nil {
		return "", false
	}

	client, err := s.clients.ByID(invoice.ClientID)
	if err != nil || client.Email == "" {
		return "", false
	}

	return client.Email, true
}

func (s *Service) afterInvoiceWrite(ctx context.Context, op string, id uuid.UUID) {
	s.producer.SendRowChanged(ctx, s.topics.InvoicesChanged, op, id)

	err := s.msgCache.Invalidate(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "invalidate message cache", "error", err)
	}

	err = s.invoices.Refresh(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "refresh invoices", "error", err)
	}
}

func (s *Service) afterClientWrite(ctx context.Context, op string, id uuid.UUID) {
	s.producer.SendRowChanged(ctx, s.topics.ClientsChanged, op, id)

	err := s.clients.Refresh(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "refresh clients", "error", err)
	}
}
