package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/arunasjusas/invoicing/internal/analytics"
	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/service"
)

const (
	dateLayout       = "2006-01-02"
	monthLayout      = "2006-01"
	maxImportBody    = 10 << 20
	importFormField  = "file"
	pdfContentType   = "application/pdf"
	jsonInvalidBody  = "Invalid request body"
	jsonInvalidID    = "Invalid id"
	jsonNotFoundText = "Not found"
)

type Service interface {
	ActiveInvoices() []entity.Invoice
	DeletedInvoices() []entity.Invoice
	InvoiceByID(id uuid.UUID) (entity.Invoice, error)
	CreateInvoice(ctx context.Context, p service.CreateInvoiceParams) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, patch entity.InvoicePatch) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	RestoreInvoice(ctx context.Context, id uuid.UUID) error
	PermanentlyDeleteInvoice(ctx context.Context, id uuid.UUID) error
	InvoicePDF(id uuid.UUID) (string, []byte, error)
	ImportInvoicesCSV(ctx context.Context, r io.Reader) (service.ImportReport, error)

	Clients() []entity.Client
	ClientByID(id uuid.UUID) (entity.Client, error)
	CreateClient(ctx context.Context, p service.CreateClientParams) (entity.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, patch entity.ClientPatch) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ImportClientsCSV(ctx context.Context, r io.Reader) (service.ImportReport, error)

	KPI(ctx context.Context) (service.DashboardKPI, error)
	Chart() []analytics.MonthBucket
	Messages(ctx context.Context) ([]entity.Message, error)
	Rates(ctx context.Context) (analytics.Rates, error)
	SendingActivity(ctx context.Context) ([]analytics.ActivityBucket, error)
	SendReminders(ctx context.Context) (service.ReminderReport, error)
}

// @title Invoicing API
// @version 1.0
// @description Invoice and client management with reminder analytics.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s,
	}
}

// Health godoc
// @Summary      Service health check
// @Tags         health
// @Success      200 {string} string "OK"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}

type AttachmentResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type InvoiceResponse struct {
	ID         string               `json:"id"`
	Number     string               `json:"number"`
	Date       string               `json:"date"`
	DueDate    string               `json:"dueDate"`
	ClientID   string               `json:"clientId,omitempty"`
	Client     string               `json:"client"`
	Amount     decimal.Decimal      `json:"amount"`
	Status     entity.InvoiceStatus `json:"status"`
	PaidAmount decimal.Decimal      `json:"paidAmount"`
	Attachment *AttachmentResponse  `json:"attachment,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	Deleted    bool                 `json:"deleted"`
	DeletedAt  *time.Time           `json:"deletedAt,omitempty"`
}

func toInvoiceResponse(invoice entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:         invoice.ID.String(),
		Number:     invoice.Number,
		Date:       invoice.Date.Format(dateLayout),
		DueDate:    invoice.DueDate.Format(dateLayout),
		Client:     invoice.ClientName,
		Amount:     invoice.Amount,
		Status:     invoice.Status,
		PaidAmount: invoice.PaidAmount,
		Notes:      invoice.Notes,
		Deleted:    invoice.Deleted,
		DeletedAt:  invoice.DeletedAt,
	}

	if !invoice.ClientID.IsNil() {
		resp.ClientID = invoice.ClientID.String()
	}

	if invoice.AttachmentName != "" || invoice.AttachmentURL != "" {
		resp.Attachment = &AttachmentResponse{
			Name: invoice.AttachmentName,
			URL:  invoice.AttachmentURL,
		}
	}

	return resp
}

func toInvoiceResponses(invoices []entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))

	for _, invoice := range invoices {
		out = append(out, toInvoiceResponse(invoice))
	}

	return out
}

// ListInvoices godoc
// @Summary      Active invoices
// @Tags         invoices
// @Produce      json
// @Success      200 {array} InvoiceResponse
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, toInvoiceResponses(h.s.ActiveInvoices()))
}

// ListDeletedInvoices godoc
// @Summary      Recycle bin invoices
// @Tags         invoices
// @Produce      json
// @Success      200 {array} InvoiceResponse
// @Security     BearerAuth
// @Router       /invoices/deleted [get]
func (h *Handler) ListDeletedInvoices(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, toInvoiceResponses(h.s.DeletedInvoices()))
}

// GetInvoice godoc
// @Summary      Invoice details
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice id"
// @Success      200 {object} InvoiceResponse
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	invoice, err := h.s.InvoiceByID(id)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, toInvoiceResponse(invoice))
}

type CreateInvoiceRequest struct {
	Number         string               `json:"number"`
	Date           string               `json:"date"`
	DueDate        string               `json:"dueDate"`
	ClientID       string               `json:"clientId"`
	Client         string               `json:"client"`
	Amount         decimal.Decimal      `json:"amount"`
	Status         entity.InvoiceStatus `json:"status"`
	PaidAmount     decimal.Decimal      `json:"paidAmount"`
	AttachmentName string               `json:"attachmentName"`
	AttachmentURL  string               `json:"attachmentUrl"`
	Notes          string               `json:"notes"`
}

// CreateInvoice godoc
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice fields"
// @Success      201 {object} InvoiceResponse
// @Failure      400 {object} ResponseError
// @Failure      409 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	params, err := req.toParams()
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	invoice, err := h.s.CreateInvoice(ctx, params)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, toInvoiceResponse(invoice))
}

func (req CreateInvoiceRequest) toParams() (service.CreateInvoiceParams, error) {
	date, err := parseDate(req.Date, "date")
	if err != nil {
		return service.CreateInvoiceParams{}, err
	}

	dueDate, err := parseDate(req.DueDate, "dueDate")
	if err != nil {
		return service.CreateInvoiceParams{}, err
	}

	var clientID uuid.UUID

	if req.ClientID != "" {
		clientID, err = uuid.FromString(req.ClientID)
		if err != nil {
			return service.CreateInvoiceParams{}, fmt.Errorf("invalid clientId: %w", err)
		}
	}

	return service.CreateInvoiceParams{
		Number:         req.Number,
		Date:           date,
		DueDate:        dueDate,
		ClientID:       clientID,
		ClientName:     req.Client,
		Amount:         req.Amount,
		Status:         req.Status,
		PaidAmount:     req.PaidAmount,
		AttachmentName: req.AttachmentName,
		AttachmentURL:  req.AttachmentURL,
		Notes:          req.Notes,
	}, nil
}

type UpdateInvoiceRequest struct {
	Number         *string               `json:"number"`
	Date           *string               `json:"date"`
	DueDate        *string               `json:"dueDate"`
	ClientID       *string               `json:"clientId"`
	Client         *string               `json:"client"`
	Amount         *decimal.Decimal      `json:"amount"`
	Status         *entity.InvoiceStatus `json:"status"`
	PaidAmount     *decimal.Decimal      `json:"paidAmount"`
	AttachmentName *string               `json:"attachmentName"`
	AttachmentURL  *string               `json:"attachmentUrl"`
	Notes          *string               `json:"notes"`
}

func (req UpdateInvoiceRequest) toPatch() (entity.InvoicePatch, error) {
	patch := entity.InvoicePatch{
		Number:         req.Number,
		ClientName:     req.Client,
		Amount:         req.Amount,
		Status:         req.Status,
		PaidAmount:     req.PaidAmount,
		AttachmentName: req.AttachmentName,
		AttachmentURL:  req.AttachmentURL,
		Notes:          req.Notes,
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date, "date")
		if err != nil {
			return entity.InvoicePatch{}, err
		}

		patch.Date = &date
	}

	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate, "dueDate")
		if err != nil {
			return entity.InvoicePatch{}, err
		}

		patch.DueDate = &dueDate
	}

	if req.ClientID != nil {
		clientID, err := uuid.FromString(*req.ClientID)
		if err != nil {
			return entity.InvoicePatch{}, fmt.Errorf("invalid clientId: %w", err)
		}

		patch.ClientID = &clientID
	}

	return patch, nil
}

// UpdateInvoice godoc
// @Summary      Update invoice fields
// @Tags         invoices
// @Accept       json
// @Param        id path string true "Invoice id"
// @Param        request body UpdateInvoiceRequest true "Fields to change"
// @Success      204
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	var req UpdateInvoiceRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	err = h.s.UpdateInvoice(ctx, id, patch)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteInvoice godoc
// @Summary      Move invoice to the recycle bin
// @Tags         invoices
// @Param        id path string true "Invoice id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	h.invoiceAction(w, r, h.s.DeleteInvoice)
}

// RestoreInvoice godoc
// @Summary      Restore invoice from the recycle bin
// @Tags         invoices
// @Param        id path string true "Invoice id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id}/restore [post]
func (h *Handler) RestoreInvoice(w http.ResponseWriter, r *http.Request) {
	h.invoiceAction(w, r, h.s.RestoreInvoice)
}

// PermanentlyDeleteInvoice godoc
// @Summary      Delete invoice for good
// @Tags         invoices
// @Param        id path string true "Invoice id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id}/permanent [delete]
func (h *Handler) PermanentlyDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	h.invoiceAction(w, r, h.s.PermanentlyDeleteInvoice)
}

func (h *Handler) invoiceAction(w http.ResponseWriter, r *http.Request, action func(context.Context, uuid.UUID) error) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	err = action(ctx, id)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// InvoicePDF godoc
// @Summary      Invoice as PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id path string true "Invoice id"
// @Success      200 {file} binary
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/{id}/pdf [get]
func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	name, doc, err := h.s.InvoicePDF(id)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", pdfContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(doc)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}

// ImportInvoices godoc
// @Summary      Import invoices from CSV
// @Description  number,date,client,amount,status,dueDate,notes; valid rows are imported even when others fail
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} service.ImportReport
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /invoices/import [post]
func (h *Handler) ImportInvoices(w http.ResponseWriter, r *http.Request) {
	h.importCSV(w, r, h.s.ImportInvoicesCSV)
}

// ImportClients godoc
// @Summary      Import clients from CSV
// @Description  name,email,phone,address,taxId; only name is required
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} service.ImportReport
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /clients/import [post]
func (h *Handler) ImportClients(w http.ResponseWriter, r *http.Request) {
	h.importCSV(w, r, h.s.ImportClientsCSV)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request, do func(context.Context, io.Reader) (service.ImportReport, error)) {
	ctx := r.Context()

	err := r.ParseMultipartForm(maxImportBody)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	file, _, err := r.FormFile(importFormField)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Missing file")
		return
	}

	defer file.Close()

	report, err := do(ctx, file)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, report)
}

type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toClientResponse(client entity.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Address:   client.Address,
		TaxID:     client.TaxID,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt.Format(dateLayout),
	}
}

// ListClients godoc
// @Summary      All clients
// @Tags         clients
// @Produce      json
// @Success      200 {array} ClientResponse
// @Security     BearerAuth
// @Router       /clients [get]
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients := h.s.Clients()

	out := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, toClientResponse(client))
	}

	SendJSON(r.Context(), w, http.StatusOK, out)
}

// GetClient godoc
// @Summary      Client details
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client id"
// @Success      200 {object} ClientResponse
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /clients/{id} [get]
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	client, err := h.s.ClientByID(id)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, toClientResponse(client))
}

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxID   string `json:"taxId"`
	Notes   string `json:"notes"`
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body CreateClientRequest true "Client fields"
// @Success      201 {object} ClientResponse
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /clients [post]
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateClientRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	client, err := h.s.CreateClient(ctx, service.CreateClientParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	})
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, toClientResponse(client))
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	TaxID   *string `json:"taxId"`
	Notes   *string `json:"notes"`
}

// UpdateClient godoc
// @Summary      Update client fields
// @Tags         clients
// @Accept       json
// @Param        id path string true "Client id"
// @Param        request body UpdateClientRequest true "Fields to change"
// @Success      204
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /clients/{id} [put]
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	var req UpdateClientRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidBody)
		return
	}

	err = h.s.UpdateClient(ctx, id, entity.ClientPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	})
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteClient godoc
// @Summary      Delete a client
// @Description  Physical delete; invoices keep the denormalized client name
// @Tags         clients
// @Param        id path string true "Client id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /clients/{id} [delete]
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, jsonInvalidID)
		return
	}

	err = h.s.DeleteClient(ctx, id)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type KPIResponse struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalInvoices    int             `json:"totalInvoices"`
	UnpaidCount      int             `json:"unpaidCount"`
	UnpaidTotal      decimal.Decimal `json:"unpaidTotal"`
	OverdueCount     int             `json:"overdueCount"`
	AverageDelayDays int             `json:"averageDelayDays"`
	SentReminders    int             `json:"sentReminders"`
}

// KPI godoc
// @Summary      Dashboard KPI rollup
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} KPIResponse
// @Security     BearerAuth
// @Router       /dashboard/kpi [get]
func (h *Handler) KPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kpi, err := h.s.KPI(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, KPIResponse{
		TotalRevenue:     kpi.TotalRevenue,
		TotalInvoices:    kpi.TotalInvoices,
		UnpaidCount:      kpi.UnpaidCount,
		UnpaidTotal:      kpi.UnpaidTotal,
		OverdueCount:     kpi.OverdueCount,
		AverageDelayDays: kpi.AverageDelayDays,
		SentReminders:    kpi.SentReminders,
	})
}

type ChartPoint struct {
	Month   string `json:"month"`
	Paid    int    `json:"paid"`
	Unpaid  int    `json:"unpaid"`
	Pending int    `json:"pending"`
}

// Chart godoc
// @Summary      Trailing 12 month invoice statistics
// @Description  Cumulative status counts per month
// @Tags         dashboard
// @Produce      json
// @Success      200 {array} ChartPoint
// @Security     BearerAuth
// @Router       /dashboard/chart [get]
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	buckets := h.s.Chart()

	out := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ChartPoint{
			Month:   b.Month.Format(monthLayout),
			Paid:    b.Paid,
			Unpaid:  b.Unpaid,
			Pending: b.Pending,
		})
	}

	SendJSON(r.Context(), w, http.StatusOK, out)
}

// Messages godoc
// @Summary      Reminder messages
// @Tags         ai
// @Produce      json
// @Success      200 {array} entity.Message
// @Security     BearerAuth
// @Router       /ai/messages [get]
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messages, err := h.s.Messages(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, messages)
}

// Analytics godoc
// @Summary      Reminder open, click-through and conversion rates
// @Tags         ai
// @Produce      json
// @Success      200 {object} analytics.Rates
// @Security     BearerAuth
// @Router       /ai/analytics [get]
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rates, err := h.s.Rates(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, rates)
}

type ActivityPoint struct {
	Month  string `json:"month"`
	Sent   int    `json:"sent"`
	Opened int    `json:"opened"`
}

// SendingActivity godoc
// @Summary      Reminder sending activity per month
// @Tags         ai
// @Produce      json
// @Success      200 {array} ActivityPoint
// @Security     BearerAuth
// @Router       /ai/activity [get]
func (h *Handler) SendingActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buckets, err := h.s.SendingActivity(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	out := make([]ActivityPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ActivityPoint{
			Month:  b.Month.Format(monthLayout),
			Sent:   b.Sent,
			Opened: b.Opened,
		})
	}

	SendJSON(ctx, w, http.StatusOK, out)
}

// SendReminders godoc
// @Summary      Dispatch the reminder sequence
// @Tags         ai
// @Produce      json
// @Success      200 {object} service.ReminderReport
// @Security     BearerAuth
// @Router       /ai/send [post]
func (h *Handler) SendReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.s.SendReminders(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, report)
}

func (h *Handler) sendServiceErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, jsonNotFoundText)
	case errors.Is(err, entity.ErrAlreadyExists):
		SendErr(ctx, w, http.StatusConflict, err, "Already exists")
	case errors.Is(err, entity.ErrValidation), errors.Is(err, entity.ErrIncorrectRequestBody):
		SendErr(ctx, w, http.StatusBadRequest, err, err.Error())
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.FromString(chi.URLParam(r, "id"))
}

func parseDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing %s", field)
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", field, raw)
	}

	return t, nil
}
