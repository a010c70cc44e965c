package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahakar/coopbank/pkg/domain"
	accountdomain "github.com/sahakar/coopbank/pkg/domain/account"
	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repo.AccountRepository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*accountdomain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateGet(err, id)
	}
	return toDomain(&m)
}

// GetForUpdate reads the row under SELECT ... FOR UPDATE, serializing
// concurrent balance mutations on the same account.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*accountdomain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateGet(err, id)
	}
	return toDomain(&m)
}

func (r *repository) FindActiveByOwnerAndType(
	ctx context.Context,
	ownerID, bankID uuid.UUID,
	t accountdomain.Type,
) (*accountdomain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND bank_id = ? AND type = ? AND active", ownerID, bankID, string(t)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m)
}

// Create assigns the next sequential account number scoped to the bank and
// persists the record. The bank row is locked first so two concurrent opens
// within one tenant cannot draw the same number.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) (*accountdomain.Account, error) {
	var bankID uuid.UUID
	err := r.db.WithContext(ctx).
		Raw("SELECT id FROM cooperative_banks WHERE id = ? FOR UPDATE", create.BankID).
		Scan(&bankID).Error
	if err != nil {
		return nil, err
	}
	if bankID == uuid.Nil {
		return nil, domain.Ef(domain.KindNotFound, "bank %s not found", create.BankID)
	}

	existing, err := r.FindActiveByOwnerAndType(ctx, create.OwnerID, create.BankID, accountdomain.Type(create.Type))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Ef(domain.KindDuplicateAccountType,
			"owner already holds an active %s account", create.Type)
	}

	var maxNumber int64
	err = r.db.WithContext(ctx).
		Model(&Account{}).
		Where("bank_id = ?", create.BankID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := Account{
		ID:             create.ID,
		Number:         maxNumber + 1,
		BankID:         create.BankID,
		OwnerID:        create.OwnerID,
		Type:           create.Type,
		Balance:        decimal.Zero,
		MinimumBalance: create.MinimumBalance,
		InterestRate:   create.InterestRate,
		Nominee:        create.Nominee,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomain(&m)
}

// MutateBalance is the single choke point through which every balance change
// flows. The row is locked, the delta applied, and the non-negative invariant
// enforced; the last-transaction timestamp moves as a side effect.
func (r *repository) MutateBalance(
	ctx context.Context,
	id uuid.UUID,
	delta decimal.Decimal,
	requireActive bool,
) (decimal.Decimal, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return decimal.Zero, translateGet(err, id)
	}
	if requireActive && !m.Active {
		return decimal.Zero, domain.E(domain.KindAccountInactive, "account is not active")
	}

	newBalance := m.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, &domain.InsufficientBalanceError{Available: m.Balance}
	}

	now := time.Now().UTC()
	err = r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":             newBalance,
			"last_transaction_at": now,
			"updated_at":          now,
		}).Error
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return translateGet(err, id)
	}
	if !m.Balance.IsZero() {
		return domain.Ef(domain.KindNonZeroBalance,
			"account %d still holds %s; balance must be zero to deactivate",
			m.Number, m.Balance.StringFixed(2))
	}
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) UpdateNominee(ctx context.Context, id uuid.UUID, nominee string) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"nominee": nominee, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	return nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*accountdomain.Account, error) {
	var rows []Account
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*accountdomain.Account, 0, len(rows))
	for i := range rows {
		acc, err := toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, acc)
	}
	return result, nil
}

func translateGet(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Ef(domain.KindNotFound, "account %s not found", id)
	}
	return err
}

func toDomain(m *Account) (*accountdomain.Account, error) {
	return accountdomain.New().
		WithID(m.ID).
		WithNumber(m.Number).
		WithOwner(m.OwnerID).
		WithBank(m.BankID).
		WithType(accountdomain.Type(m.Type)).
		WithBalance(m.Balance).
		WithMinimumBalance(m.MinimumBalance).
		WithInterestRate(m.InterestRate).
		WithNominee(m.Nominee).
		WithActive(m.Active).
		WithLastTxnAt(m.LastTransactionAt).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}
