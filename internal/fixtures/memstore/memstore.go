// Package memstore provides an in-memory UnitOfWork for service tests.
// Do serializes transactions behind one mutex and rolls the whole store back
// when fn fails, giving tests the same commit-or-nothing semantics as the
// database-backed implementation.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/repository"
)

// Store is an in-memory UnitOfWork. The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	accounts     map[uuid.UUID]*account.Account
	transactions []*ledger.Transaction
	users        map[uuid.UUID]*dto.UserRead
	banks        map[uuid.UUID]*dto.BankRead
	kycs         map[uuid.UUID]*dto.KycRead
	audits       []*dto.AuditRecord
	nextNumber   map[uuid.UUID]int64

	// Failure injection for isolation tests.
	AuditCreateErr error
	TxnCreateErr   error
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]*account.Account),
		users:      make(map[uuid.UUID]*dto.UserRead),
		banks:      make(map[uuid.UUID]*dto.BankRead),
		kycs:       make(map[uuid.UUID]*dto.KycRead),
		nextNumber: make(map[uuid.UUID]int64),
	}
}

type snapshot struct {
	accounts     map[uuid.UUID]*account.Account
	transactions []*ledger.Transaction
	users        map[uuid.UUID]*dto.UserRead
	banks        map[uuid.UUID]*dto.BankRead
	kycs         map[uuid.UUID]*dto.KycRead
	audits       []*dto.AuditRecord
	nextNumber   map[uuid.UUID]int64
}

func (s *Store) take() snapshot {
	snap := snapshot{
		accounts:     make(map[uuid.UUID]*account.Account, len(s.accounts)),
		transactions: append([]*ledger.Transaction(nil), s.transactions...),
		users:        make(map[uuid.UUID]*dto.UserRead, len(s.users)),
		banks:        make(map[uuid.UUID]*dto.BankRead, len(s.banks)),
		kycs:         make(map[uuid.UUID]*dto.KycRead, len(s.kycs)),
		audits:       append([]*dto.AuditRecord(nil), s.audits...),
		nextNumber:   make(map[uuid.UUID]int64, len(s.nextNumber)),
	}
	for k, v := range s.accounts {
		cp := *v
		snap.accounts[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		snap.users[k] = &cp
	}
	for k, v := range s.banks {
		cp := *v
		snap.banks[k] = &cp
	}
	for k, v := range s.kycs {
		cp := *v
		snap.kycs[k] = &cp
	}
	for k, v := range s.nextNumber {
		snap.nextNumber[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.users = snap.users
	s.banks = snap.banks
	s.kycs = snap.kycs
	s.audits = snap.audits
	s.nextNumber = snap.nextNumber
}

// Do runs fn as one serialized transaction. Repositories obtained from the
// store must only be used inside fn.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.take()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{s: s}, nil
}

func (s *Store) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{s: s}, nil
}

func (s *Store) UserRepository() (repository.UserRepository, error) {
	return &userRepo{s: s}, nil
}

func (s *Store) BankRepository() (repository.BankRepository, error) {
	return &bankRepo{s: s}, nil
}

func (s *Store) KycRepository() (repository.KycRepository, error) {
	return &kycRepo{s: s}, nil
}

func (s *Store) AuditRepository() (repository.AuditRepository, error) {
	return &auditRepo{s: s}, nil
}

// SeedBank inserts a bank directly, bypassing the transaction boundary.
func (s *Store) SeedBank(b dto.BankRead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.banks[b.ID] = &b
}

// SeedAccount inserts an account directly, bypassing the transaction boundary.
func (s *Store) SeedAccount(a account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Number == 0 {
		s.nextNumber[a.BankID]++
		a.Number = s.nextNumber[a.BankID]
	} else if a.Number > s.nextNumber[a.BankID] {
		s.nextNumber[a.BankID] = a.Number
	}
	s.accounts[a.ID] = &a
}

// SeedUser inserts a user directly, bypassing the transaction boundary.
func (s *Store) SeedUser(u dto.UserRead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

// Account returns a copy of the stored account.
func (s *Store) Account(id uuid.UUID) (account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return account.Account{}, false
	}
	return *a, true
}

// Transactions returns a copy of the ledger, oldest first.
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, *t)
	}
	return out
}

// AuditRecords returns a copy of the audit trail, oldest first.
func (s *Store) AuditRecords() []dto.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.AuditRecord, 0, len(s.audits))
	for _, r := range s.audits {
		out = append(out, *r)
	}
	return out
}
