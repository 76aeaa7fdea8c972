package store_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/store"
)

func clientStore(t *testing.T, clients []entity.Client) *store.ClientStore {
	t.Helper()

	s := store.NewClientStore(func(_ context.Context) ([]entity.Client, error) {
		return clients, nil
	})

	err := s.Refresh(context.Background())
	require.NoError(t, err)

	return s
}

func TestClientStore_ByName(t *testing.T) {
	t.Parallel()

	newest := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "UAB Statyba"}
	older := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "uab statyba"}

	s := clientStore(t, []entity.Client{newest, older})

	client, err := s.ByName("UAB STATYBA")
	require.NoError(t, err)
	require.Equal(t, newest.ID, client.ID)

	_, err = s.ByName("missing")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestClientStore_NameByID(t *testing.T) {
	t.Parallel()

	client := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "UAB Statyba"}
	s := clientStore(t, []entity.Client{client})

	require.Equal(t, "UAB Statyba", s.NameByID(client.ID))
	require.Equal(t, entity.UnknownClientName, s.NameByID(uuid.Must(uuid.NewV4())))
}
