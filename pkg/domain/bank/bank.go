// Package bank defines the cooperative bank tenant.
package bank

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
)

// Bank is a tenant: the unit of data isolation. Accounts, users and
// transactions all reference exactly one bank.
type Bank struct {
	ID        uuid.UUID
	Code      string // short registration code, unique system-wide
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates an active bank tenant.
func New(code, name, address string) (*Bank, error) {
	if code == "" {
		return nil, domain.E(domain.KindValidation, "bank code cannot be empty")
	}
	if name == "" {
		return nil, domain.E(domain.KindValidation, "bank name cannot be empty")
	}
	now := time.Now().UTC()
	return &Bank{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		Address:   address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
