package kyc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a KYC repository bound to the given session.
func New(db *gorm.DB) repo.KycRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.KycCreate) error {
	m := Document{
		ID:      create.ID,
		OwnerID: create.OwnerID,
		BankID:  create.BankID,
		Type:    create.Type,
		FileRef: create.FileRef,
		Status:  "pending",
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.KycRead, error) {
	var m Document
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Ef(domain.KindNotFound, "kyc document %s not found", id)
		}
		return nil, err
	}
	return toRead(&m), nil
}

func (r *repository) Review(ctx context.Context, id uuid.UUID, review dto.KycReview) error {
	res := r.db.WithContext(ctx).
		Model(&Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      review.Status,
			"review_note": review.ReviewNote,
			"reviewed_by": review.ReviewedBy,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Ef(domain.KindNotFound, "kyc document %s not found", id)
	}
	return nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.KycRead, error) {
	var rows []Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.KycRead, 0, len(rows))
	for i := range rows {
		result = append(result, toRead(&rows[i]))
	}
	return result, nil
}

func toRead(m *Document) *dto.KycRead {
	return &dto.KycRead{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		BankID:     m.BankID,
		Type:       m.Type,
		FileRef:    m.FileRef,
		Status:     m.Status,
		ReviewNote: m.ReviewNote,
		ReviewedBy: m.ReviewedBy,
		CreatedAt:  m.CreatedAt,
	}
}
