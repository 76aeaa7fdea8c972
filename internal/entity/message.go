package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type MessageStatus string

const (
	MessageSent         MessageStatus = "SENT"
	MessageOpened       MessageStatus = "OPENED"
	MessageNotDelivered MessageStatus = "NOT_DELIVERED"
)

type MessageStep string

const (
	StepOne   MessageStep = "Step 1"
	StepTwo   MessageStep = "Step 2"
	StepThree MessageStep = "Step 3"
)

// Message is a synthesized payment reminder. Messages are derived from the
// current invoice snapshot, not independently persisted: the ID is
// deterministic per invoice and step so regeneration over the same snapshot
// yields the same set.
type Message struct {
	ID        string        `json:"id"`
	Date      time.Time     `json:"date"`
	Step      MessageStep   `json:"step"`
	Client    string        `json:"client"`
	Status    MessageStatus `json:"status"`
	InvoiceID uuid.UUID     `json:"invoiceId"`
}
