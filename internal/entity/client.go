package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Client struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientPatch lists exactly the fields a caller may change on an existing
// client.
type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
	Notes   *string
}

func (p ClientPatch) IsZero() bool {
	return p == ClientPatch{}
}
