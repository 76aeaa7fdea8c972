package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/api/events"
)

type refreshCounter struct {
	invoices int
	clients  int
	err      error
}

func (c *refreshCounter) RefreshInvoices(_ context.Context) error {
	c.invoices++
	return c.err
}

func (c *refreshCounter) RefreshClients(_ context.Context) error {
	c.clients++
	return c.err
}

func TestEventHandler_RefreshesOnSignal(t *testing.T) {
	t.Parallel()

	counter := &refreshCounter{}
	h := events.NewEventHandler(counter)

	// payload content is irrelevant, only the topic matters
	msg := kafka.Message{Value: []byte(`{"op":"insert","row_id":"whatever"}`)}

	require.NoError(t, h.OnInvoicesChanged(context.Background(), msg))
	require.NoError(t, h.OnInvoicesChanged(context.Background(), msg))
	require.NoError(t, h.OnClientsChanged(context.Background(), msg))

	require.Equal(t, 2, counter.invoices)
	require.Equal(t, 1, counter.clients)
}

func TestEventHandler_PropagatesRefreshError(t *testing.T) {
	t.Parallel()

	refreshErr := errors.New("connection refused")
	h := events.NewEventHandler(&refreshCounter{err: refreshErr})

	err := h.OnInvoicesChanged(context.Background(), kafka.Message{})
	require.ErrorIs(t, err, refreshErr)
}
