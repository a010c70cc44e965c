// Package domain holds the failure taxonomy shared by every service.
// Each failure carries a stable machine-readable kind so callers can
// branch on it, and a human-readable message for API responses.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies a class of failure.
type Kind string

const (
	// KindValidation marks bad input shape or range. Caller's fault, not retryable as-is.
	KindValidation Kind = "validation_error"
	// KindNotFound marks an absent account, transaction, user or bank.
	KindNotFound Kind = "not_found"
	// KindAccountInactive marks an operation against a deactivated account.
	KindAccountInactive Kind = "account_inactive"
	// KindInsufficientBalance marks a debit that would breach the available balance.
	KindInsufficientBalance Kind = "insufficient_balance"
	// KindDuplicateAccountType marks a second active account of the same type for one owner.
	KindDuplicateAccountType Kind = "duplicate_account_type"
	// KindNonZeroBalance marks a deactivation attempt on an account that still holds funds.
	KindNonZeroBalance Kind = "non_zero_balance"
	// KindCrossTenantAccessDenied marks an operation crossing cooperative bank boundaries.
	KindCrossTenantAccessDenied Kind = "cross_tenant_access_denied"
	// KindAccessDenied marks an actor that is neither the owner nor a privileged role.
	KindAccessDenied Kind = "access_denied"
	// KindConcurrencyConflict marks an aborted or timed-out storage transaction. Safe to retry.
	KindConcurrencyConflict Kind = "concurrency_conflict"
	// KindStorage marks an unexpected persistence failure. Surfaced, never auto-retried.
	KindStorage Kind = "storage_failure"
)

// Error is the standard typed failure returned across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind implements the kinded-error contract used by KindOf.
func (e *Error) ErrorKind() Kind { return e.Kind }

// E builds a typed failure.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Ef builds a typed failure with a formatted message.
func Ef(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a typed failure.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InsufficientBalanceError reports the available balance observed at decision time.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s", e.Available.StringFixed(2))
}

// ErrorKind implements the kinded-error contract used by KindOf.
func (e *InsufficientBalanceError) ErrorKind() Kind { return KindInsufficientBalance }

type kinder interface {
	ErrorKind() Kind
}

// KindOf extracts the failure kind from an error chain. Unclassified errors
// report KindStorage: an unexpected failure is a storage-layer problem until
// proven otherwise.
func KindOf(err error) Kind {
	var k kinder
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable reports whether the caller may safely retry the operation.
func IsRetryable(err error) bool {
	return IsKind(err, KindConcurrencyConflict)
}
