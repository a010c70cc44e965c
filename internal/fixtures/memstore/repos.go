package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
)

type accountRepo struct{ s *Store }

func (r *accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	// Serialization comes from the Do mutex.
	return r.Get(ctx, id)
}

func (r *accountRepo) FindActiveByOwnerAndType(
	_ context.Context,
	ownerID, bankID uuid.UUID,
	t account.Type,
) (*account.Account, error) {
	for _, a := range r.s.accounts {
		if a.OwnerID == ownerID && a.BankID == bankID && a.Type == t && a.Active {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *accountRepo) Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error) {
	if _, ok := r.s.banks[create.BankID]; !ok {
		return nil, domain.Ef(domain.KindNotFound, "bank %s not found", create.BankID)
	}
	existing, err := r.FindActiveByOwnerAndType(ctx, create.OwnerID, create.BankID, account.Type(create.Type))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Ef(domain.KindDuplicateAccountType,
			"owner already holds an active %s account", create.Type)
	}
	r.s.nextNumber[create.BankID]++
	now := time.Now().UTC()
	a := account.Account{
		ID:             create.ID,
		Number:         r.s.nextNumber[create.BankID],
		OwnerID:        create.OwnerID,
		BankID:         create.BankID,
		Type:           account.Type(create.Type),
		Balance:        decimal.Zero,
		MinimumBalance: create.MinimumBalance,
		InterestRate:   create.InterestRate,
		Nominee:        create.Nominee,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.accounts[a.ID] = &a
	cp := a
	return &cp, nil
}

func (r *accountRepo) MutateBalance(
	_ context.Context,
	id uuid.UUID,
	delta decimal.Decimal,
	requireActive bool,
) (decimal.Decimal, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return decimal.Zero, domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	if requireActive && !a.Active {
		return decimal.Zero, domain.E(domain.KindAccountInactive, "account is not active")
	}
	newBalance := a.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, &domain.InsufficientBalanceError{Available: a.Balance}
	}
	now := time.Now().UTC()
	a.Balance = newBalance
	a.LastTransactionAt = &now
	a.UpdatedAt = now
	return newBalance, nil
}

func (r *accountRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	a, ok := r.s.accounts[id]
	if !ok {
		return domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	if !a.Balance.IsZero() {
		return domain.Ef(domain.KindNonZeroBalance,
			"account %d still holds %s; balance must be zero to deactivate",
			a.Number, a.Balance.StringFixed(2))
	}
	a.Active = false
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *accountRepo) UpdateNominee(_ context.Context, id uuid.UUID, nominee string) error {
	a, ok := r.s.accounts[id]
	if !ok {
		return domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	a.Nominee = nominee
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *accountRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range r.s.accounts {
		if a.OwnerID == ownerID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, txn *ledger.Transaction) error {
	if r.s.TxnCreateErr != nil {
		return r.s.TxnCreateErr
	}
	for _, existing := range r.s.transactions {
		if existing.ID == txn.ID {
			return domain.Ef(domain.KindValidation, "transaction %s already exists", txn.ID)
		}
		if txn.ReferenceNumber != nil && existing.ReferenceNumber != nil &&
			*existing.ReferenceNumber == *txn.ReferenceNumber {
			return domain.Ef(domain.KindValidation,
				"reference number %s already used", *txn.ReferenceNumber)
		}
	}
	cp := *txn
	r.s.transactions = append(r.s.transactions, &cp)
	return nil
}

func (r *transactionRepo) Get(_ context.Context, id string) (*dto.TransactionRead, error) {
	for _, t := range r.s.transactions {
		if t.ID == id {
			read := toTransactionRead(t)
			return &read, nil
		}
	}
	return nil, domain.Ef(domain.KindNotFound, "transaction %s not found", id)
}

func (r *transactionRepo) ListByAccount(
	_ context.Context,
	accountID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	match := func(t *ledger.Transaction) bool {
		return (t.SourceID != nil && *t.SourceID == accountID) ||
			(t.DestinationID != nil && *t.DestinationID == accountID)
	}
	return r.page(match, limit, offset), nil
}

func (r *transactionRepo) ListByBank(
	_ context.Context,
	bankID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	match := func(t *ledger.Transaction) bool { return t.BankID == bankID }
	return r.page(match, limit, offset), nil
}

func (r *transactionRepo) page(match func(*ledger.Transaction) bool, limit, offset int) *dto.TransactionPage {
	var all []*ledger.Transaction
	for _, t := range r.s.transactions {
		if match(t) {
			all = append(all, t)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	page := &dto.TransactionPage{Limit: limit, Offset: offset, Total: int64(len(all))}
	for i := offset; i < len(all) && len(page.Items) < limit; i++ {
		page.Items = append(page.Items, toTransactionRead(all[i]))
	}
	return page
}

func toTransactionRead(t *ledger.Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:              t.ID,
		BankID:          t.BankID,
		SourceID:        t.SourceID,
		DestinationID:   t.DestinationID,
		Amount:          t.Amount,
		Type:            string(t.Type),
		Description:     t.Description,
		BalanceAfter:    t.BalanceAfter,
		Status:          string(t.Status),
		ReferenceNumber: t.ReferenceNumber,
		ProcessedBy:     t.ProcessedBy,
		CreatedAt:       t.CreatedAt,
	}
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, create dto.UserCreate) error {
	r.s.users[create.ID] = &dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		Email:          create.Email,
		Role:           create.Role,
		BankID:         create.BankID,
		CreatedAt:      time.Now().UTC(),
		HashedPassword: create.HashedPassword,
	}
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.Ef(domain.KindNotFound, "user %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*dto.UserRead, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.Ef(domain.KindNotFound, "user %s not found", email)
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*dto.UserRead, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.Ef(domain.KindNotFound, "user %s not found", username)
}

type bankRepo struct{ s *Store }

func (r *bankRepo) Create(_ context.Context, create dto.BankCreate) error {
	r.s.banks[create.ID] = &dto.BankRead{
		ID:        create.ID,
		Code:      create.Code,
		Name:      create.Name,
		Address:   create.Address,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *bankRepo) Get(_ context.Context, id uuid.UUID) (*dto.BankRead, error) {
	b, ok := r.s.banks[id]
	if !ok {
		return nil, domain.Ef(domain.KindNotFound, "bank %s not found", id)
	}
	cp := *b
	return &cp, nil
}

func (r *bankRepo) GetByCode(_ context.Context, code string) (*dto.BankRead, error) {
	for _, b := range r.s.banks {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.Ef(domain.KindNotFound, "bank %s not found", code)
}

func (r *bankRepo) List(_ context.Context) ([]*dto.BankRead, error) {
	var out []*dto.BankRead
	for _, b := range r.s.banks {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type kycRepo struct{ s *Store }

func (r *kycRepo) Create(_ context.Context, create dto.KycCreate) error {
	r.s.kycs[create.ID] = &dto.KycRead{
		ID:        create.ID,
		OwnerID:   create.OwnerID,
		BankID:    create.BankID,
		Type:      create.Type,
		FileRef:   create.FileRef,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *kycRepo) Get(_ context.Context, id uuid.UUID) (*dto.KycRead, error) {
	d, ok := r.s.kycs[id]
	if !ok {
		return nil, domain.Ef(domain.KindNotFound, "document %s not found", id)
	}
	cp := *d
	return &cp, nil
}

func (r *kycRepo) Review(_ context.Context, id uuid.UUID, review dto.KycReview) error {
	d, ok := r.s.kycs[id]
	if !ok {
		return domain.Ef(domain.KindNotFound, "document %s not found", id)
	}
	d.Status = review.Status
	d.ReviewNote = review.ReviewNote
	reviewer := review.ReviewedBy
	d.ReviewedBy = &reviewer
	return nil
}

func (r *kycRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*dto.KycRead, error) {
	var out []*dto.KycRead
	for _, d := range r.s.kycs {
		if d.OwnerID == ownerID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(_ context.Context, record dto.AuditRecord) error {
	if r.s.AuditCreateErr != nil {
		return r.s.AuditCreateErr
	}
	cp := record
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

func (r *auditRepo) ListByBank(
	_ context.Context,
	bankID uuid.UUID,
	limit, offset int,
) ([]*dto.AuditRecord, error) {
	var all []*dto.AuditRecord
	for _, rec := range r.s.audits {
		if rec.BankID == bankID {
			all = append(all, rec)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	var out []*dto.AuditRecord
	for i := offset; i < len(all) && len(out) < limit; i++ {
		cp := *all[i]
		out = append(out, &cp)
	}
	return out, nil
}
