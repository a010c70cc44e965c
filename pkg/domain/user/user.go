// Package user defines members and staff of cooperative banks.
package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/utils"
)

// Role enumerates access levels. super_admin crosses tenant boundaries;
// everyone else is bound to one cooperative bank.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleAdmin, RoleManager, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", domain.Ef(domain.KindValidation, "unknown role %q", s)
}

// User represents a registered member or staff account.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	Role           Role
	BankID         uuid.UUID // uuid.Nil for super_admin
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates a user with a bcrypt-hashed password and current timestamps.
func New(username, email, password string, role Role, bankID uuid.UUID) (*User, error) {
	if username == "" {
		return nil, domain.E(domain.KindValidation, "username cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, domain.Ef(domain.KindValidation, "invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, domain.E(domain.KindValidation, "password must be at least 8 characters")
	}
	if role != RoleSuperAdmin && bankID == uuid.Nil {
		return nil, domain.E(domain.KindValidation, "bank is required for non-super-admin users")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		BankID:         bankID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
