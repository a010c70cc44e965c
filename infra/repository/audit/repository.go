package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates an audit repository bound to the given session.
func New(db *gorm.DB) repo.AuditRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record dto.AuditRecord) error {
	m := Record{
		ID:           record.ID,
		ActorID:      record.ActorID,
		BankID:       record.BankID,
		Action:       record.Action,
		ResourceType: record.ResourceType,
		ResourceID:   record.ResourceID,
		Details:      record.Details,
		Outcome:      record.Outcome,
		CreatedAt:    record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *repository) ListByBank(
	ctx context.Context,
	bankID uuid.UUID,
	limit, offset int,
) ([]*dto.AuditRecord, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AuditRecord, 0, len(rows))
	for i := range rows {
		m := rows[i]
		result = append(result, &dto.AuditRecord{
			ID:           m.ID,
			ActorID:      m.ActorID,
			BankID:       m.BankID,
			Action:       m.Action,
			ResourceType: m.ResourceType,
			ResourceID:   m.ResourceID,
			Details:      m.Details,
			Outcome:      m.Outcome,
			CreatedAt:    m.CreatedAt,
		})
	}
	return result, nil
}
