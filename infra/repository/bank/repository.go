package bank

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a bank repository bound to the given session.
func New(db *gorm.DB) repo.BankRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.BankCreate) error {
	m := Bank{
		ID:      create.ID,
		Code:    create.Code,
		Name:    create.Name,
		Address: create.Address,
		Active:  true,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.BankRead, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *repository) GetByCode(ctx context.Context, code string) (*dto.BankRead, error) {
	return r.getBy(ctx, "code = ?", code)
}

func (r *repository) List(ctx context.Context) ([]*dto.BankRead, error) {
	var rows []Bank
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.BankRead, 0, len(rows))
	for i := range rows {
		result = append(result, toRead(&rows[i]))
	}
	return result, nil
}

func (r *repository) getBy(ctx context.Context, query string, arg any) (*dto.BankRead, error) {
	var m Bank
	if err := r.db.WithContext(ctx).First(&m, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.E(domain.KindNotFound, "bank not found")
		}
		return nil, err
	}
	return toRead(&m), nil
}

func toRead(m *Bank) *dto.BankRead {
	return &dto.BankRead{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}
