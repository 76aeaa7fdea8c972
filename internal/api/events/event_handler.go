package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type Service interface {
	RefreshInvoices(ctx context.Context) error
	RefreshClients(ctx context.Context) error
}

type EventHandler struct {
	s Service
}

func NewEventHandler(s Service) *EventHandler {
	return &EventHandler{s: s}
}

// Change events carry only the row id and operation. The payload is treated
// as a signal: the whole table is refetched rather than patched row by row,
// so a missed or reordered event cannot leave the snapshot inconsistent.

func (h *EventHandler) OnInvoicesChanged(ctx context.Context, _ kafka.Message) error {
	err := h.s.RefreshInvoices(ctx)
	if err != nil {
		return fmt.Errorf("refresh invoices: %w", err)
	}

	return nil
}

func (h *EventHandler) OnClientsChanged(ctx context.Context, _ kafka.Message) error {
	err := h.s.RefreshClients(ctx)
	if err != nil {
		return fmt.Errorf("refresh clients: %w", err)
	}

	return nil
}
