package store

import (
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/arunasjusas/invoicing/internal/entity"
)

type ClientStore struct {
	*Store[entity.Client]
}

func NewClientStore(fetch FetchFunc[entity.Client]) *ClientStore {
	return &ClientStore{
		Store: New(fetch),
	}
}

func (s *ClientStore) ByID(id uuid.UUID) (entity.Client, error) {
	for _, client := range s.Items() {
		if client.ID == id {
			return client, nil
		}
	}

	return entity.Client{}, entity.ErrNotFound
}

// ByName matches case-insensitively. Names are not unique; the newest match
// wins because the snapshot is ordered newest first.
func (s *ClientStore) ByName(name string) (entity.Client, error) {
	for _, client := range s.Items() {
		if strings.EqualFold(client.Name, name) {
			return client, nil
		}
	}

	return entity.Client{}, entity.ErrNotFound
}

// NameByID resolves a display name for an invoice's client reference, falling
// back for orphaned references.
func (s *ClientStore) NameByID(id uuid.UUID) string {
	client, err := s.ByID(id)
	if err != nil {
		return entity.UnknownClientName
	}

	return client.Name
}
