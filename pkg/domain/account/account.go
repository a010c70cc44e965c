// Package account defines the Account aggregate for a cooperative bank member.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/domain"
)

// Type enumerates the supported account products.
type Type string

const (
	TypeSavings          Type = "savings"
	TypeCurrent          Type = "current"
	TypeFixedDeposit     Type = "fixed_deposit"
	TypeRecurringDeposit Type = "recurring_deposit"
)

// ParseType validates and normalizes an account type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeSavings, TypeCurrent, TypeFixedDeposit, TypeRecurringDeposit:
		return Type(s), nil
	}
	return "", domain.Ef(domain.KindValidation, "unknown account type %q", s)
}

// Account represents a member's account within one cooperative bank.
//
// Invariants:
//   - Balance is never negative.
//   - BankID is immutable after creation; every account belongs to exactly one tenant.
//   - Balance changes flow only through the repository's balance mutation, never
//     by writing the field directly.
//   - The minimum-balance floor is a withdrawal pre-check, not a hard invariant:
//     interest and penalty postings may push the balance below it.
type Account struct {
	ID                uuid.UUID
	Number            int64 // sequential within the bank
	OwnerID           uuid.UUID
	BankID            uuid.UUID
	Type              Type
	Balance           decimal.Decimal
	MinimumBalance    decimal.Decimal
	InterestRate      decimal.Decimal // percent per annum
	Nominee           string
	Active            bool
	LastTransactionAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Available returns the amount eligible for withdrawal or transfer:
// balance minus the minimum-balance floor, clamped at zero.
func (a *Account) Available() decimal.Decimal {
	avail := a.Balance.Sub(a.MinimumBalance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// CanDebit checks the activity flag and the available balance for a plain
// withdrawal or transfer debit. Interest and penalty postings skip this check.
func (a *Account) CanDebit(amount decimal.Decimal) error {
	if !a.Active {
		return domain.E(domain.KindAccountInactive, "account is not active")
	}
	if avail := a.Available(); amount.GreaterThan(avail) {
		return &domain.InsufficientBalanceError{Available: avail}
	}
	return nil
}

// CanDeactivate enforces the zero-balance rule for closing an account.
func (a *Account) CanDeactivate() error {
	if !a.Balance.IsZero() {
		return domain.Ef(domain.KindNonZeroBalance,
			"account %d still holds %s; balance must be zero to deactivate",
			a.Number, a.Balance.StringFixed(2))
	}
	return nil
}

// Builder constructs valid Account instances. Repository hydration and tests
// use the With* setters to restore persisted state.
type Builder struct {
	id             uuid.UUID
	number         int64
	ownerID        uuid.UUID
	bankID         uuid.UUID
	accountType    Type
	balance        decimal.Decimal
	minimumBalance decimal.Decimal
	interestRate   decimal.Decimal
	nominee        string
	active         bool
	lastTxnAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// New returns a Builder with a fresh ID, active flag set and zero balance.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		accountType: TypeSavings,
		active:      true,
		createdAt:   time.Now().UTC(),
	}
}

func (b *Builder) WithID(id uuid.UUID) *Builder          { b.id = id; return b }
func (b *Builder) WithNumber(n int64) *Builder           { b.number = n; return b }
func (b *Builder) WithOwner(id uuid.UUID) *Builder       { b.ownerID = id; return b }
func (b *Builder) WithBank(id uuid.UUID) *Builder        { b.bankID = id; return b }
func (b *Builder) WithType(t Type) *Builder              { b.accountType = t; return b }
func (b *Builder) WithNominee(n string) *Builder         { b.nominee = n; return b }
func (b *Builder) WithActive(active bool) *Builder       { b.active = active; return b }
func (b *Builder) WithCreatedAt(t time.Time) *Builder    { b.createdAt = t; return b }
func (b *Builder) WithUpdatedAt(t time.Time) *Builder    { b.updatedAt = t; return b }
func (b *Builder) WithLastTxnAt(t *time.Time) *Builder   { b.lastTxnAt = t; return b }
func (b *Builder) WithBalance(d decimal.Decimal) *Builder { b.balance = d; return b }

func (b *Builder) WithMinimumBalance(d decimal.Decimal) *Builder {
	b.minimumBalance = d
	return b
}

func (b *Builder) WithInterestRate(d decimal.Decimal) *Builder {
	b.interestRate = d
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, domain.E(domain.KindValidation, "account owner is required")
	}
	if b.bankID == uuid.Nil {
		return nil, domain.E(domain.KindValidation, "account bank is required")
	}
	if _, err := ParseType(string(b.accountType)); err != nil {
		return nil, err
	}
	if b.balance.IsNegative() {
		return nil, domain.E(domain.KindValidation, "balance cannot be negative")
	}
	if b.minimumBalance.IsNegative() {
		return nil, domain.E(domain.KindValidation, "minimum balance cannot be negative")
	}
	if b.interestRate.IsNegative() {
		return nil, domain.E(domain.KindValidation, "interest rate cannot be negative")
	}
	return &Account{
		ID:                b.id,
		Number:            b.number,
		OwnerID:           b.ownerID,
		BankID:            b.bankID,
		Type:              b.accountType,
		Balance:           b.balance,
		MinimumBalance:    b.minimumBalance,
		InterestRate:      b.interestRate,
		Nominee:           b.nominee,
		Active:            b.active,
		LastTransactionAt: b.lastTxnAt,
		CreatedAt:         b.createdAt,
		UpdatedAt:         b.updatedAt,
	}, nil
}
