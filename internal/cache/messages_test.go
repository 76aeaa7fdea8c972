package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/cache"
	"github.com/arunasjusas/invoicing/internal/entity"
)

func testCache(t *testing.T) *cache.Messages {
	t.Helper()

	mr := miniredis.RunT(t)

	return cache.NewMessages(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func testMessages() []entity.Message {
	return []entity.Message{
		{
			ID:        "msg-1",
			Date:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Step:      entity.StepOne,
			Client:    "UAB Statyba",
			Status:    entity.MessageSent,
			InvoiceID: uuid.Must(uuid.NewV4()),
		},
		{
			ID:        "msg-2",
			Date:      time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			Step:      entity.StepTwo,
			Client:    "UAB Statyba",
			Status:    entity.MessageOpened,
			InvoiceID: uuid.Must(uuid.NewV4()),
		},
	}
}

func TestMessages_GetMiss(t *testing.T) {
	t.Parallel()

	c := testCache(t)

	messages, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, messages)
}

func TestMessages_SetGet(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	want := testMessages()

	err := c.Set(context.Background(), want)
	require.NoError(t, err)

	got, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestMessages_Invalidate(t *testing.T) {
	t.Parallel()

	c := testCache(t)

	err := c.Set(context.Background(), testMessages())
	require.NoError(t, err)

	err = c.Invalidate(context.Background())
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMessages_InvalidateEmpty(t *testing.T) {
	t.Parallel()

	c := testCache(t)

	err := c.Invalidate(context.Background())
	require.NoError(t, err)
}
