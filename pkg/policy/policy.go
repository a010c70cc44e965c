// Package policy resolves an authenticated caller into a permission decision.
// The transaction engine consults it before touching any account; a denial
// aborts the operation before any mutation.
package policy

import (
	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/user"
)

// Actor is the resolved caller identity attached to every operation:
// who they are, what they may do, and which cooperative bank binds them.
type Actor struct {
	ID     uuid.UUID
	Role   user.Role
	BankID uuid.UUID // uuid.Nil for super_admin
}

// Policy holds the tenancy rules. AllowCrossTenantTransfer gates whether a
// super_admin may move funds between banks; whether the source system intended
// that is ambiguous, so it is a deliberate configuration knob.
type Policy struct {
	AllowCrossTenantTransfer bool
}

func (a Actor) privileged() bool {
	return a.Role == user.RoleAdmin || a.Role == user.RoleManager
}

// CanOperate decides whether the actor may operate on an account owned by
// ownerID within bank accountBankID. Permitted: the owner, an admin or
// manager of the same bank, or a super_admin.
func (p Policy) CanOperate(actor Actor, ownerID, accountBankID uuid.UUID) error {
	if actor.Role == user.RoleSuperAdmin {
		return nil
	}
	if actor.BankID != accountBankID {
		return domain.E(domain.KindCrossTenantAccessDenied,
			"account belongs to a different cooperative bank")
	}
	if actor.ID == ownerID || actor.privileged() {
		return nil
	}
	return domain.E(domain.KindAccessDenied,
		"caller is neither the account owner nor bank staff")
}

// CanTransfer decides whether the actor may move funds from a source account
// to a destination account. Source-side authorization follows CanOperate;
// destination ownership is not checked, but the destination's tenant must
// match the source's unless a super_admin acts and the cross-tenant toggle
// is enabled.
func (p Policy) CanTransfer(actor Actor, ownerID, sourceBankID, destBankID uuid.UUID) error {
	if err := p.CanOperate(actor, ownerID, sourceBankID); err != nil {
		return err
	}
	if sourceBankID == destBankID {
		return nil
	}
	if actor.Role == user.RoleSuperAdmin && p.AllowCrossTenantTransfer {
		return nil
	}
	return domain.E(domain.KindCrossTenantAccessDenied,
		"transfers may not cross cooperative bank boundaries")
}

// CanReview decides whether the actor may review KYC documents or post
// interest and penalties for bank bankID.
func (p Policy) CanReview(actor Actor, bankID uuid.UUID) error {
	if actor.Role == user.RoleSuperAdmin {
		return nil
	}
	if actor.BankID != bankID {
		return domain.E(domain.KindCrossTenantAccessDenied,
			"resource belongs to a different cooperative bank")
	}
	if actor.privileged() {
		return nil
	}
	return domain.E(domain.KindAccessDenied, "caller requires admin or manager role")
}
