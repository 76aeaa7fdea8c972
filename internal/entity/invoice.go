package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	StatusPaid    InvoiceStatus = "PAID"
	StatusUnpaid  InvoiceStatus = "UNPAID"
	StatusPending InvoiceStatus = "PENDING"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPaid, StatusUnpaid, StatusPending:
		return true
	default:
		return false
	}
}

// UnknownClientName is shown when an invoice references a client that no
// longer exists.
const UnknownClientName = "Unknown client"

type Invoice struct {
	ID             uuid.UUID
	Number         string
	Date           time.Time
	DueDate        time.Time
	ClientID       uuid.UUID
	ClientName     string
	Amount         decimal.Decimal
	Status         InvoiceStatus
	PaidAmount     decimal.Decimal
	AttachmentName string
	AttachmentURL  string
	Notes          string
	Deleted        bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining is the unpaid balance: amount minus the accumulated partial
// payments.
func (i Invoice) Remaining() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsUnpaid reports the UNPAID status regardless of the due date. KPI counters
// labelled "unpaid" use this predicate.
func (i Invoice) IsUnpaid() bool {
	return i.Status == StatusUnpaid
}

// IsOverdue reports an UNPAID invoice whose due date has passed. Past-due
// KPIs and reminder synthesis use this predicate, never IsUnpaid.
func (i Invoice) IsOverdue(now time.Time) bool {
	return i.Status == StatusUnpaid && i.DueDate.Before(now)
}

// InvoicePatch lists exactly the fields a caller may change on an existing
// invoice. ID and CreatedAt are server-managed and deliberately absent.
type InvoicePatch struct {
	Number         *string
	Date           *time.Time
	DueDate        *time.Time
	ClientID       *uuid.UUID
	ClientName     *string
	Amount         *decimal.Decimal
	Status         *InvoiceStatus
	PaidAmount     *decimal.Decimal
	AttachmentName *string
	AttachmentURL  *string
	Notes          *string
}

func (p InvoicePatch) IsZero() bool {
	return p == InvoicePatch{}
}
