package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/domain"
	ledgerdomain "github.com/sahakar/coopbank/pkg/domain/ledger"
	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a ledger repository bound to the given session.
func New(db *gorm.DB) repo.TransactionRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, txn *ledgerdomain.Transaction) error {
	m := Transaction{
		ID:              txn.ID,
		BankID:          txn.BankID,
		SourceID:        txn.SourceID,
		DestinationID:   txn.DestinationID,
		Amount:          txn.Amount,
		Type:            string(txn.Type),
		Description:     txn.Description,
		BalanceAfter:    txn.BalanceAfter,
		Status:          string(txn.Status),
		ReferenceNumber: txn.ReferenceNumber,
		ProcessedBy:     txn.ProcessedBy,
		CreatedAt:       txn.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Wrap(domain.KindValidation, "duplicate transaction or reference number", err)
		}
		return err
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*dto.TransactionRead, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Ef(domain.KindNotFound, "transaction %s not found", id)
		}
		return nil, err
	}
	return toRead(&m), nil
}

func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	query := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("source_id = ? OR destination_id = ?", accountID, accountID)
	return r.page(query, limit, offset)
}

func (r *repository) ListByBank(
	ctx context.Context,
	bankID uuid.UUID,
	limit, offset int,
) (*dto.TransactionPage, error) {
	query := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("bank_id = ?", bankID)
	return r.page(query, limit, offset)
}

func (r *repository) page(query *gorm.DB, limit, offset int) (*dto.TransactionPage, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var rows []Transaction
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionRead, 0, len(rows))
	for i := range rows {
		items = append(items, *toRead(&rows[i]))
	}
	return &dto.TransactionPage{Items: items, Limit: limit, Offset: offset, Total: total}, nil
}

func toRead(m *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:              m.ID,
		BankID:          m.BankID,
		SourceID:        m.SourceID,
		DestinationID:   m.DestinationID,
		Amount:          m.Amount,
		Type:            m.Type,
		Description:     m.Description,
		BalanceAfter:    m.BalanceAfter,
		Status:          m.Status,
		ReferenceNumber: m.ReferenceNumber,
		ProcessedBy:     m.ProcessedBy,
		CreatedAt:       m.CreatedAt,
	}
}
